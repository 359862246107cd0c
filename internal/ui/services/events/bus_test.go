package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pathChanged struct{ Path string }

func TestTopicDeliversInOrder(t *testing.T) {
	topic := NewTopic[pathChanged]()
	var got []string
	topic.Subscribe(func(e pathChanged) { got = append(got, "first:"+e.Path) })
	topic.Subscribe(func(e pathChanged) { got = append(got, "second:"+e.Path) })

	topic.Publish(pathChanged{Path: "/a"})
	topic.Publish(pathChanged{Path: "/b"})

	assert.Equal(t, []string{"first:/a", "second:/a", "first:/b", "second:/b"}, got)
}

func TestTopicUnsubscribe(t *testing.T) {
	topic := NewTopic[int]()
	calls := 0
	unsubscribe := topic.Subscribe(func(int) { calls++ })
	topic.Publish(1)
	unsubscribe()
	unsubscribe()
	topic.Publish(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, topic.Len())
}

func TestPublishEachProducesPerSubscriber(t *testing.T) {
	topic := NewTopic[[]int]()
	var first, second []int
	topic.Subscribe(func(v []int) { v[0] = 99; first = v })
	topic.Subscribe(func(v []int) { second = v })

	src := []int{1, 2}
	topic.PublishEach(func() []int { return append([]int(nil), src...) })

	assert.Equal(t, []int{99, 2}, first)
	assert.Equal(t, []int{1, 2}, second)
	assert.Equal(t, []int{1, 2}, src)
}

func TestNullPublisher(t *testing.T) {
	var p Publisher[string] = NullPublisher[string]{}
	assert.NotPanics(t, func() { p.Publish("x") })
}
