// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType names the kind of event being published. Publishers define
// their own values; the broker treats them as opaque.
type EventType string

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

// PublisherFunc adapts a plain function to the Publisher interface.
type PublisherFunc[T any] func(eventType EventType, payload T)

// Publish calls f(eventType, payload).
func (f PublisherFunc[T]) Publish(eventType EventType, payload T) {
	f(eventType, payload)
}

// Discard is a Publisher that drops every event.
type Discard[T any] struct{}

// Publish does nothing.
func (Discard[T]) Publish(EventType, T) {}

// Fanout publishes each event to every wrapped publisher in order.
type Fanout[T any] []Publisher[T]

// Publish forwards the event to each publisher, skipping nil entries.
func (f Fanout[T]) Publish(eventType EventType, payload T) {
	for _, p := range f {
		if p != nil {
			p.Publish(eventType, payload)
		}
	}
}
