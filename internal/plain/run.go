package plain

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/pubsub"
	"github.com/zjrosen/breathe/internal/sound"
	"github.com/zjrosen/breathe/internal/telemetry"
)

// Options configures a plain session.
type Options struct {
	Out      io.Writer
	Labels   labels.Set
	Duration int

	// Cycles stops the session after that many completed squares.
	// Zero runs until ctx is cancelled.
	Cycles int

	Sound sound.Service
	Muted bool

	TickerFactory breathing.TickerFactory
	Tracer        trace.Tracer
	Metrics       *telemetry.Metrics
}

// Run starts a session and prints it until ctx is cancelled or the cycle
// limit is reached. Returns the final state; the summary is always printed.
func Run(ctx context.Context, opts Options) breathing.State {
	printer := NewPrinter(opts.Out, opts.Labels)
	emitter := sound.NewEmitter(opts.Sound, sound.WithMuted(opts.Muted))
	recorder := telemetry.NewSessionRecorder(opts.Tracer, opts.Metrics)

	ctrl := breathing.NewController(
		breathing.WithCycleDuration(opts.Duration),
		breathing.WithPublisher(pubsub.Fanout[breathing.Transition]{printer, emitter, recorder}),
	)
	runner := breathing.NewRunner(ctrl, breathing.WithTickerFactory(opts.TickerFactory))

	lease := runner.Start()
	ticks := pump(ctx, lease)

	for {
		select {
		case <-ctx.Done():
			return finish(runner, printer, recorder, "interrupted")
		case id, ok := <-ticks:
			if !ok {
				return finish(runner, printer, recorder, "ticker stopped")
			}
			if !runner.Tick(id) {
				printer.Count(runner.State())
			}
			if opts.Cycles > 0 && runner.State().CyclesCompleted >= opts.Cycles {
				return finish(runner, printer, recorder, "cycle limit reached")
			}
		}
	}
}

// pump forwards ticks from lease until it is released or ctx ends.
func pump(ctx context.Context, lease *breathing.Lease) <-chan uint64 {
	ticks := make(chan uint64)
	go func() {
		defer close(ticks)
		for {
			if _, ok := lease.Wait(); !ok {
				return
			}
			select {
			case ticks <- lease.ID():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ticks
}

func finish(runner *breathing.Runner, printer *Printer, recorder *telemetry.SessionRecorder, reason string) breathing.State {
	final := runner.State()
	runner.Close()
	recorder.Close(final)
	printer.Summary(final)
	log.Info(log.CatTimer, "Plain session finished", "reason", reason,
		"cycles", final.CyclesCompleted, "seconds", final.TotalElapsedSeconds)
	return final
}
