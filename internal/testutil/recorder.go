package testutil

import (
	"sync"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/pubsub"
)

// RecordedEvent is one event captured by a Recorder.
type RecordedEvent struct {
	Type       pubsub.EventType
	Transition breathing.Transition
}

// Recorder is a synchronous publisher that keeps every controller event.
type Recorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

// Publish implements pubsub.Publisher.
func (r *Recorder) Publish(eventType pubsub.EventType, payload breathing.Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{Type: eventType, Transition: payload})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []pubsub.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]pubsub.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// PhaseChanges returns the target phases of every phase_changed event.
func (r *Recorder) PhaseChanges() []breathing.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []breathing.Phase
	for _, e := range r.events {
		if e.Type == breathing.EventPhaseChanged {
			out = append(out, e.Transition.To)
		}
	}
	return out
}

// Clear drops recorded events.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
