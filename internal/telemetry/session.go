package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/pubsub"
)

// SessionSpanName is the span covering one session from start to reset.
const SessionSpanName = "breathing.session"

// Span attribute keys.
const (
	AttrSessionID       = attribute.Key("session.id")
	AttrCycleDuration   = attribute.Key("cycle.duration_seconds")
	AttrCyclesCompleted = attribute.Key("session.cycles_completed")
	AttrTotalSeconds    = attribute.Key("session.total_seconds")
	AttrPhase           = attribute.Key("phase")
	AttrFromPhase       = attribute.Key("phase.from")
)

// SessionRecorder turns controller events into one span per session and
// counter increments. It implements pubsub.Publisher and runs on the
// goroutine that drives the Controller.
type SessionRecorder struct {
	tracer  trace.Tracer
	metrics *Metrics
	newID   func() string

	span   trace.Span
	id     string
	last   breathing.State
	cycles int
}

// RecorderOption configures a SessionRecorder.
type RecorderOption func(*SessionRecorder)

// WithIDGenerator replaces the session ID source.
func WithIDGenerator(fn func() string) RecorderOption {
	return func(r *SessionRecorder) {
		r.newID = fn
	}
}

// NewSessionRecorder records onto tracer and metrics. Either may be nil.
func NewSessionRecorder(tracer trace.Tracer, metrics *Metrics, opts ...RecorderOption) *SessionRecorder {
	r := &SessionRecorder{
		tracer:  tracer,
		metrics: metrics,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionID returns the ID of the running session, or "" between sessions.
func (r *SessionRecorder) SessionID() string {
	return r.id
}

// Publish implements pubsub.Publisher.
func (r *SessionRecorder) Publish(eventType pubsub.EventType, t breathing.Transition) {
	ctx := context.Background()

	switch eventType {
	case breathing.EventStarted:
		r.begin(ctx, t.State)
	case breathing.EventPhaseChanged:
		r.phaseChanged(ctx, t)
	case breathing.EventPaused:
		r.addEvent("paused", AttrTotalSeconds.Int(t.State.TotalElapsedSeconds))
	case breathing.EventResumed:
		r.addEvent("resumed", AttrPhase.String(t.State.Phase.String()))
	case breathing.EventReset, breathing.EventDurationChanged:
		r.last = t.Previous
		r.end(string(eventType))
		return
	}
	r.last = t.State
}

// Close ends a running session span with final as its totals.
func (r *SessionRecorder) Close(final breathing.State) {
	r.last = final
	r.end("closed")
}

func (r *SessionRecorder) begin(ctx context.Context, s breathing.State) {
	r.end("restarted")

	r.id = r.newID()
	r.cycles = s.CyclesCompleted
	if r.tracer != nil {
		_, r.span = r.tracer.Start(ctx, SessionSpanName, trace.WithAttributes(
			AttrSessionID.String(r.id),
			AttrCycleDuration.Int(s.CycleDurationSeconds),
		))
	}
	if r.metrics != nil {
		r.metrics.SessionStarted(ctx, s.CycleDurationSeconds)
	}
	log.Info(log.CatTrace, "Session started", "session", r.id, "duration", s.CycleDurationSeconds)
}

func (r *SessionRecorder) phaseChanged(ctx context.Context, t breathing.Transition) {
	r.addEvent("phase.entered",
		AttrPhase.String(t.To.String()),
		AttrFromPhase.String(t.From.String()),
	)
	if r.metrics != nil {
		r.metrics.PhaseEntered(ctx, t.To)
	}

	if t.State.CyclesCompleted > r.cycles {
		r.cycles = t.State.CyclesCompleted
		r.addEvent("cycle.completed", AttrCyclesCompleted.Int(r.cycles))
		if r.metrics != nil {
			r.metrics.CycleCompleted(ctx, t.State.CycleDurationSeconds)
		}
	}
}

func (r *SessionRecorder) addEvent(name string, attrs ...attribute.KeyValue) {
	if r.span == nil {
		return
	}
	r.span.AddEvent(name, trace.WithAttributes(attrs...))
}

func (r *SessionRecorder) end(reason string) {
	if r.id == "" {
		return
	}
	if r.span != nil {
		r.span.SetAttributes(
			AttrCyclesCompleted.Int(r.last.CyclesCompleted),
			AttrTotalSeconds.Int(r.last.TotalElapsedSeconds),
			attribute.String("session.end_reason", reason),
		)
		r.span.End()
		r.span = nil
	}
	log.Info(log.CatTrace, "Session ended", "session", r.id, "reason", reason,
		"cycles", r.last.CyclesCompleted, "seconds", r.last.TotalElapsedSeconds)
	r.id = ""
}
