package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"filegrip/internal/ui/services/events"
)

func newService(count int) (*Service, *[]CursorMovedEvent) {
	cursor := events.NewTopic[CursorMovedEvent]()
	var moves []CursorMovedEvent
	cursor.Subscribe(func(e CursorMovedEvent) { moves = append(moves, e) })

	s := NewService(cursor, nil)
	s.SetCountFunction(func() int { return count })
	return s, &moves
}

func TestListNavigation(t *testing.T) {
	s, moves := newService(5)

	s.Navigate(DirectionUp)
	assert.Equal(t, 0, s.GetCursor())
	assert.Empty(t, *moves)

	s.Navigate(DirectionDown)
	s.Navigate(DirectionDown)
	assert.Equal(t, 2, s.GetCursor())

	s.Navigate(DirectionEnd)
	assert.Equal(t, 4, s.GetCursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 4, s.GetCursor())

	s.Navigate(DirectionLeft)
	assert.Equal(t, 4, s.GetCursor(), "left does nothing in a list")

	s.Navigate(DirectionHome)
	assert.Equal(t, 0, s.GetCursor())
	assert.Equal(t, CursorMovedEvent{OldIndex: 4, NewIndex: 0}, (*moves)[len(*moves)-1])
}

func TestGridNavigation(t *testing.T) {
	s, _ := newService(10)
	s.SetColumns(4)

	s.Navigate(DirectionRight)
	assert.Equal(t, 1, s.GetCursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 5, s.GetCursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 9, s.GetCursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 9, s.GetCursor(), "no row below")
	s.Navigate(DirectionUp)
	assert.Equal(t, 5, s.GetCursor())
	s.Navigate(DirectionLeft)
	assert.Equal(t, 4, s.GetCursor())
}

func TestViewportFollowsCursor(t *testing.T) {
	viewport := events.NewTopic[ViewportChangedEvent]()
	var offsets []int
	viewport.Subscribe(func(e ViewportChangedEvent) { offsets = append(offsets, e.Offset) })

	s := NewService(nil, viewport)
	s.SetCountFunction(func() int { return 30 })
	s.SetViewportHeight(5)

	s.MoveToIndex(7)
	assert.Equal(t, 3, s.GetViewportOffset())

	s.Navigate(DirectionPageUp)
	assert.Equal(t, 3, s.GetCursor())
	assert.LessOrEqual(t, s.GetViewportOffset(), 3)

	s.Navigate(DirectionPageDown)
	assert.Equal(t, 7, s.GetCursor())

	s.Navigate(DirectionHome)
	assert.Equal(t, 0, s.GetViewportOffset())
	assert.NotEmpty(t, offsets)
}

func TestClampAfterShrink(t *testing.T) {
	count := 10
	s := NewService(nil, nil)
	s.SetCountFunction(func() int { return count })

	s.MoveToIndex(8)
	count = 3
	s.Clamp()
	assert.Equal(t, 2, s.GetCursor())

	count = 0
	s.Clamp()
	assert.Equal(t, 0, s.GetCursor())

	s.Reset()
	assert.Equal(t, 0, s.GetViewportOffset())
}
