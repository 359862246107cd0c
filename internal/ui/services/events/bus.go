package events

import (
	"sync"
)

// Topic delivers values of one event type to its subscribers.
// Delivery is synchronous and in subscription order.
type Topic[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// NewTopic creates an empty topic
func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{}
}

// Subscribe registers a handler and returns a function that removes it
func (t *Topic[T]) Subscribe(fn func(T)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.subs = append(t.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends v to every subscriber
func (t *Topic[T]) Publish(v T) {
	t.PublishEach(func() T { return v })
}

// PublishEach calls produce once per subscriber so each one can get its own copy
func (t *Topic[T]) PublishEach(produce func() T) {
	t.mu.RLock()
	subs := make([]subscriber[T], len(t.subs))
	copy(subs, t.subs)
	t.mu.RUnlock()

	for _, s := range subs {
		s.fn(produce())
	}
}

// Len returns the number of subscribers
func (t *Topic[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}
