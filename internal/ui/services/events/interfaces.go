package events

// Publisher is the sending side of a Topic
type Publisher[T any] interface {
	Publish(event T)
}

// Subscriber is the receiving side of a Topic
type Subscriber[T any] interface {
	Subscribe(handler func(T)) func()
}

// NullPublisher drops every event
type NullPublisher[T any] struct{}

func (NullPublisher[T]) Publish(T) {}
