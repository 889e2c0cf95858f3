package breathing

import (
	"fmt"

	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/pubsub"
)

// Lifecycle event types published by the Controller.
const (
	EventStarted         pubsub.EventType = "started"
	EventResumed         pubsub.EventType = "resumed"
	EventPaused          pubsub.EventType = "paused"
	EventReset           pubsub.EventType = "reset"
	EventDurationChanged pubsub.EventType = "duration_changed"
	EventPhaseChanged    pubsub.EventType = "phase_changed"
)

// Transition is the payload of every controller event. State is the
// snapshot taken after the change was applied.
type Transition struct {
	From  Phase
	To    Phase
	State State

	// Previous is the snapshot discarded by a reset or duration change.
	// It is zero for every other event.
	Previous State
}

// Controller owns the breathing State and the commands that mutate it.
// It does not play audio or render; observers react to published events.
// A Controller belongs to one goroutine and is not safe for concurrent use.
type Controller struct {
	state     State
	publisher pubsub.Publisher[Transition]
}

// Option configures a Controller.
type Option func(*Controller)

// WithCycleDuration sets the initial seconds per phase. Unsupported values
// are ignored and the default is kept.
func WithCycleDuration(seconds int) Option {
	return func(c *Controller) {
		if IsSupportedDuration(seconds) {
			c.state = initialState(seconds)
		}
	}
}

// WithPublisher sets where lifecycle events are published.
func WithPublisher(p pubsub.Publisher[Transition]) Option {
	return func(c *Controller) {
		if p != nil {
			c.publisher = p
		}
	}
}

// NewController creates an idle controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		state:     initialState(DefaultCycleDuration),
		publisher: pubsub.Discard[Transition]{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current session state.
func (c *Controller) State() State {
	return c.state
}

// Start begins or resumes the session. A session starting from Idle enters
// Inhale immediately, without waiting for a tick. No-op when already active.
func (c *Controller) Start() {
	if c.state.Active {
		return
	}
	c.state.Active = true

	if c.state.Phase != Idle {
		log.Debug(log.CatTimer, "Session resumed", "phase", c.state.Phase, "second", c.state.SecondsIntoPhase)
		c.publish(EventResumed, c.state.Phase, c.state.Phase)
		return
	}

	log.Info(log.CatTimer, "Session started", "duration", c.state.CycleDurationSeconds)
	c.publish(EventStarted, Idle, Idle)
	c.enterPhase(Inhale)
}

// Pause stops the session, keeping phase, counters and duration so that
// Start resumes from the same point.
func (c *Controller) Pause() {
	if !c.state.Active {
		return
	}
	c.state.Active = false
	log.Debug(log.CatTimer, "Session paused", "phase", c.state.Phase, "second", c.state.SecondsIntoPhase)
	c.publish(EventPaused, c.state.Phase, c.state.Phase)
}

// Toggle pauses an active session or starts an inactive one.
func (c *Controller) Toggle() {
	if c.state.Active {
		c.Pause()
		return
	}
	c.Start()
}

// Reset returns to Idle with zeroed counters. The duration is kept.
func (c *Controller) Reset() {
	prev := c.state
	c.state = initialState(c.state.CycleDurationSeconds)
	log.Debug(log.CatTimer, "Session reset", "from", prev.Phase)
	c.publisher.Publish(EventReset, Transition{From: prev.Phase, To: Idle, State: c.state, Previous: prev})
}

// SetCycleDuration changes the seconds per phase and fully resets the
// session, whether or not it is running. Unsupported values are rejected
// with ErrUnsupportedDuration and leave the state untouched.
func (c *Controller) SetCycleDuration(seconds int) error {
	if !IsSupportedDuration(seconds) {
		return fmt.Errorf("%w: %d", ErrUnsupportedDuration, seconds)
	}
	prev := c.state
	c.state = initialState(seconds)
	log.Info(log.CatTimer, "Cycle duration changed", "duration", seconds)
	c.publisher.Publish(EventDurationChanged, Transition{From: prev.Phase, To: Idle, State: c.state, Previous: prev})
	return nil
}

// Tick advances the session by one second and reports whether the phase
// changed. An inactive session is normalized to Idle and nothing is counted.
func (c *Controller) Tick() bool {
	if !c.state.Active {
		c.state.Phase = Idle
		c.state.SecondsIntoPhase = 1
		return false
	}

	changed := false
	if c.state.Phase == Idle {
		c.enterPhase(Inhale)
		changed = true
	}

	c.state.TotalElapsedSeconds++

	if c.state.SecondsIntoPhase < c.state.CycleDurationSeconds {
		c.state.SecondsIntoPhase++
		return changed
	}

	from := c.state.Phase
	to := Next(from)
	if CompletesCycle(from, to) {
		c.state.CyclesCompleted++
		log.Debug(log.CatTimer, "Cycle completed", "cycles", c.state.CyclesCompleted)
	}
	c.enterPhase(to)
	return true
}

func (c *Controller) enterPhase(to Phase) {
	from := c.state.Phase
	c.state.Phase = to
	c.state.SecondsIntoPhase = 1
	c.publish(EventPhaseChanged, from, to)
}

func (c *Controller) publish(eventType pubsub.EventType, from, to Phase) {
	c.publisher.Publish(eventType, Transition{From: from, To: to, State: c.state})
}
