package events

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Bus is a synchronous publish/subscribe event bus. The engine is
// single-threaded per turn, but the viewer subscribes from its own loop, so
// subscription bookkeeping stays mutex-guarded.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	logger      zerolog.Logger
}

// NewBus creates a new event bus instance
func NewBus() *Bus {
	return &Bus{
		logger: log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber. Delivery order follows registration order.
func (b *Bus) Subscribe(subscriber Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = append(b.subscribers, subscriber)
	b.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber by ID
func (b *Bus) Unsubscribe(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s.ID() == subscriberID {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			break
		}
	}
	b.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// Publish delivers an event to every interested subscriber synchronously.
// A panicking subscriber is isolated so it cannot break the others.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, subscriber := range b.subscribers {
		if !subscriber.InterestedIn(event.Type()) {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error().
						Str("subscriber_id", subscriber.ID()).
						Str("event_type", event.Type()).
						Interface("panic", r).
						Msg("Subscriber panicked while handling event")
				}
			}()
			subscriber.HandleEvent(event)
		}()
	}
}

// SubscriberCount returns the number of subscribers for debugging
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
