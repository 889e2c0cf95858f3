package sound

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/pubsub"
)

const defaultPlayTimeout = 5 * time.Second

// Emitter subscribes to controller events and plays one tone per phase entry.
// It implements pubsub.Publisher so it can sit directly behind a Controller.
type Emitter struct {
	mu      sync.Mutex
	service Service
	muted   bool
	last    breathing.Phase
	timeout time.Duration

	dispatch func(func())
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithMuted sets the initial mute flag.
func WithMuted(muted bool) EmitterOption {
	return func(e *Emitter) {
		e.muted = muted
	}
}

// WithDispatch replaces how playback is scheduled. The default runs each
// playback on its own goroutine.
func WithDispatch(dispatch func(func())) EmitterOption {
	return func(e *Emitter) {
		e.dispatch = dispatch
	}
}

// WithPlayTimeout bounds a single playback.
func WithPlayTimeout(d time.Duration) EmitterOption {
	return func(e *Emitter) {
		e.timeout = d
	}
}

// NewEmitter creates an Emitter playing through service.
func NewEmitter(service Service, opts ...EmitterOption) *Emitter {
	if service == nil {
		service = NoopService{}
	}
	e := &Emitter{
		service:  service,
		timeout:  defaultPlayTimeout,
		dispatch: func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetMuted turns playback on or off.
func (e *Emitter) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
}

// Muted reports whether playback is suppressed.
func (e *Emitter) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// ToggleMuted flips the mute flag and returns the new value.
func (e *Emitter) ToggleMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	return e.muted
}

// SetService swaps the playback backend.
func (e *Emitter) SetService(service Service) {
	if service == nil {
		service = NoopService{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.service = service
}

// Publish implements pubsub.Publisher.
func (e *Emitter) Publish(eventType pubsub.EventType, t breathing.Transition) {
	e.Handle(eventType, t)
}

// Handle reacts to one controller event and reports whether a tone was
// scheduled.
func (e *Emitter) Handle(eventType pubsub.EventType, t breathing.Transition) bool {
	e.mu.Lock()
	prev := e.last
	e.last = t.State.Phase
	play := eventType == breathing.EventPhaseChanged &&
		t.State.Active &&
		t.To != breathing.Idle &&
		t.To != prev &&
		!e.muted
	service := e.service
	timeout := e.timeout
	e.mu.Unlock()

	if !play {
		return false
	}

	phase := t.To
	e.dispatch(func() {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorErr(log.CatSound, "Tone playback panicked", fmt.Errorf("%v", r), "phase", phase)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := service.Play(ctx, phase); err != nil {
			log.Warn(log.CatSound, "Tone playback failed", "phase", phase, "error", err)
		}
	})
	return true
}
