package plain_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/plain"
	"github.com/zjrosen/breathe/internal/testutil"
)

func init() {
	// Disable color output in tests so assertions match plain text.
	color.NoColor = true
}

func TestPrinter_PhaseLinesAndCountdown(t *testing.T) {
	var buf bytes.Buffer
	printer := plain.NewPrinter(&buf, labels.For(labels.English))
	ctrl := breathing.NewController(breathing.WithPublisher(printer))

	ctrl.Start()
	for range 5 {
		if !ctrl.Tick() {
			printer.Count(ctrl.State())
		}
	}
	printer.Summary(ctrl.State())

	assert.Equal(t, "SQUARE BREATHING · 4 SECONDS\n"+
		"INHALE 4 3 2 1\n"+
		"HOLD   4 3\n"+
		"Cycles 0  ·  Time 0:05\n", buf.String())
}

func TestPrinter_CountBeforeAnyPhaseIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	printer := plain.NewPrinter(&buf, labels.For(labels.English))
	printer.Count(breathing.State{CycleDurationSeconds: 4, SecondsIntoPhase: 1})
	assert.Empty(t, buf.String())
}

func TestPrinter_RussianLabelsAlign(t *testing.T) {
	var buf bytes.Buffer
	printer := plain.NewPrinter(&buf, labels.For(labels.Russian))
	ctrl := breathing.NewController(breathing.WithPublisher(printer))

	ctrl.Start()
	testutil.Ticks(ctrl, 4)
	printer.Summary(ctrl.State())

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "ВДОХ     4", lines[1])
	assert.Equal(t, "ЗАДЕРЖКА 4", lines[2])
}

func runPlain(t *testing.T, ctx context.Context, opts plain.Options) (*testutil.TickerFactory, <-chan breathing.State) {
	t.Helper()
	factory := &testutil.TickerFactory{}
	opts.TickerFactory = factory.New
	done := make(chan breathing.State, 1)
	go func() { done <- plain.Run(ctx, opts) }()
	require.Eventually(t, func() bool { return factory.Count() == 1 }, time.Second, time.Millisecond)
	return factory, done
}

func wait(t *testing.T, done <-chan breathing.State) breathing.State {
	t.Helper()
	select {
	case s := <-done:
		return s
	case <-time.After(3 * time.Second):
		t.Fatal("plain session did not finish")
		return breathing.State{}
	}
}

func TestRun_StopsAfterCycleLimit(t *testing.T) {
	var buf bytes.Buffer
	factory, done := runPlain(t, context.Background(), plain.Options{
		Out:      &buf,
		Labels:   labels.For(labels.English),
		Duration: 4,
		Cycles:   1,
		Muted:    true,
	})

	for range 16 {
		require.True(t, factory.Last().Fire())
	}
	s := wait(t, done)

	assert.Equal(t, 1, s.CyclesCompleted)
	assert.Equal(t, 16, s.TotalElapsedSeconds)
	assert.True(t, factory.Last().Stopped())
	assert.Equal(t, "SQUARE BREATHING · 4 SECONDS\n"+
		"INHALE 4 3 2 1\n"+
		"HOLD   4 3 2 1\n"+
		"EXHALE 4 3 2 1\n"+
		"HOLD   4 3 2 1\n"+
		"INHALE 4\n"+
		"Cycles 1  ·  Time 0:16\n", buf.String())
}

func TestRun_CancelPrintsSummary(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	factory, done := runPlain(t, ctx, plain.Options{
		Out:      &buf,
		Labels:   labels.For(labels.English),
		Duration: 6,
	})

	cancel()
	s := wait(t, done)

	assert.Equal(t, breathing.Inhale, s.Phase)
	assert.Equal(t, 6, s.CycleDurationSeconds)
	assert.Zero(t, s.TotalElapsedSeconds)
	assert.True(t, factory.Last().Stopped())
	assert.Equal(t, "SQUARE BREATHING · 6 SECONDS\nINHALE 6\nCycles 0  ·  Time 0:00\n", buf.String())
}

func TestRun_UnsupportedDurationFallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	_, done := runPlain(t, ctx, plain.Options{
		Out:      &buf,
		Labels:   labels.For(labels.English),
		Duration: 5,
	})
	cancel()

	assert.Equal(t, breathing.DefaultCycleDuration, wait(t, done).CycleDurationSeconds)
}
