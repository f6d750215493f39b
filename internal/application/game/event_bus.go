package game

import (
	"sync"
)

// EventBus provides pub/sub for game events.
// Thread-safe, supports multiple subscribers.
// Uses buffered channels to prevent blocking publishers.
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan GameEvent
	buffer      int
}

// Compile-time interface checks
var (
	_ EventPublisher  = (*EventBus)(nil)
	_ EventSubscriber = (*EventBus)(nil)
)

// NewEventBus creates a new event bus; buffer is the per-subscriber channel size
func NewEventBus(buffer int) *EventBus {
	if buffer <= 0 {
		buffer = 16
	}
	return &EventBus{buffer: buffer}
}

// Publish delivers an event to every subscriber
func (b *EventBus) Publish(event GameEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		// Non-blocking send - skip if channel buffer is full
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel that receives events. Caller must Unsubscribe when done.
func (b *EventBus) Subscribe() <-chan GameEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan GameEvent, b.buffer)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription. Closes the channel.
func (b *EventBus) Unsubscribe(ch <-chan GameEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, c := range b.subscribers {
		if c == ch {
			close(c)
			// order doesn't matter, so swap with last
			b.subscribers[i] = b.subscribers[len(b.subscribers)-1]
			b.subscribers = b.subscribers[:len(b.subscribers)-1]
			return
		}
	}
}

// SubscriberCount returns the number of active subscriptions
func (b *EventBus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
