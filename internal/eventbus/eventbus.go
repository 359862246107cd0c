package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"filegrip/internal/domain"
	"filegrip/internal/logging"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDirectoryLoaded    = domain.EventDirectoryLoaded
	EventOperationFailed    = domain.EventOperationFailed
	EventOperationCompleted = domain.EventOperationCompleted
	EventSelectionConfirmed = domain.EventSelectionConfirmed
	EventPickerCancelled    = domain.EventPickerCancelled
	EventConfigLoaded       = domain.EventConfigLoaded
	EventConfigSaved        = domain.EventConfigSaved
	EventConfigChanged      = domain.EventConfigChanged
)

// Re-export domain event types
type DirectoryLoadedEvent = domain.DirectoryLoadedEvent
type OperationFailedEvent = domain.OperationFailedEvent
type OperationCompletedEvent = domain.OperationCompletedEvent
type SelectionConfirmedEvent = domain.SelectionConfirmedEvent
type PickerCancelledEvent = domain.PickerCancelledEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	running   sync.WaitGroup // handler goroutines
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	logging.Debug("eventbus: publishing", zap.String("event", string(event.Type())))

	select {
	case b.eventChan <- event:
	default:
		logging.Warn("eventbus: channel full, dropping event", zap.String("event", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Events already queued are still delivered
// and Close returns once every running handler has finished.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
		b.running.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

// deliver runs every handler of the event's type in its own goroutine
func (b *bus) deliver(event DomainEvent) {
	// Copy handlers so none run under the lock
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	b.running.Add(len(subs))
	for _, s := range subs {
		go func(h EventHandler, eventType EventType) {
			defer b.running.Done()
			defer func() {
				if r := recover(); r != nil {
					logging.Error("eventbus: handler panic",
						zap.String("event", string(eventType)),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()),
					)
				}
			}()
			h(event)
		}(s.handler, event.Type())
	}
}
