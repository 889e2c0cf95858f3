package breathing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/pubsub"
	"github.com/zjrosen/breathe/internal/testutil"
)

type point struct {
	phase  breathing.Phase
	second int
}

func at(ctrl *breathing.Controller) point {
	s := ctrl.State()
	return point{s.Phase, s.SecondsIntoPhase}
}

func TestNewController_Defaults(t *testing.T) {
	ctrl := breathing.NewController()

	require.Equal(t, breathing.State{
		Phase:                breathing.Idle,
		CycleDurationSeconds: breathing.DefaultCycleDuration,
		SecondsIntoPhase:     1,
	}, ctrl.State())
}

func TestNewController_IgnoresUnsupportedDuration(t *testing.T) {
	ctrl := breathing.NewController(breathing.WithCycleDuration(7))
	require.Equal(t, breathing.DefaultCycleDuration, ctrl.State().CycleDurationSeconds)
}

func TestStart_EntersInhaleImmediately(t *testing.T) {
	for _, d := range breathing.SupportedDurations() {
		ctrl := breathing.NewController()
		require.NoError(t, ctrl.SetCycleDuration(d))

		ctrl.Start()

		s := ctrl.State()
		assert.Equal(t, breathing.Inhale, s.Phase, "duration %d", d)
		assert.Equal(t, 1, s.SecondsIntoPhase, "duration %d", d)
		assert.True(t, s.Active)
		assert.Equal(t, 0, s.TotalElapsedSeconds)
	}
}

func TestStart_IdempotentWhenActive(t *testing.T) {
	rec := &testutil.Recorder{}
	ctrl := testutil.StartedController(4, 2, breathing.WithPublisher(rec))
	before := ctrl.State()
	rec.Clear()

	ctrl.Start()

	require.Equal(t, before, ctrl.State())
	require.Empty(t, rec.Events())
}

func TestScenario_FullSquareAtFourSeconds(t *testing.T) {
	ctrl := breathing.NewController(breathing.WithCycleDuration(4))
	ctrl.Start()
	require.Equal(t, point{breathing.Inhale, 1}, at(ctrl))

	steps := []point{
		{breathing.HoldIn, 1},
		{breathing.Exhale, 1},
		{breathing.HoldOut, 1},
		{breathing.Inhale, 1},
	}
	for i, want := range steps {
		testutil.Ticks(ctrl, 4)
		require.Equal(t, want, at(ctrl), "after %d ticks", (i+1)*4)
	}

	s := ctrl.State()
	require.Equal(t, 1, s.CyclesCompleted)
	require.Equal(t, 16, s.TotalElapsedSeconds)
}

func TestTick_CountsWithinPhase(t *testing.T) {
	ctrl := testutil.StartedController(6, 0)

	for second := 2; second <= 6; second++ {
		changed := ctrl.Tick()
		require.False(t, changed)
		require.Equal(t, point{breathing.Inhale, second}, at(ctrl))
	}

	require.True(t, ctrl.Tick())
	require.Equal(t, point{breathing.HoldIn, 1}, at(ctrl))
}

func TestTick_InactiveNormalizesToIdle(t *testing.T) {
	ctrl := testutil.StartedController(4, 6)
	ctrl.Pause()
	before := ctrl.State()

	require.False(t, ctrl.Tick())

	s := ctrl.State()
	require.Equal(t, breathing.Idle, s.Phase)
	require.Equal(t, 1, s.SecondsIntoPhase)
	require.Equal(t, before.TotalElapsedSeconds, s.TotalElapsedSeconds)
	require.Equal(t, before.CyclesCompleted, s.CyclesCompleted)
}

func TestTick_InactiveIdleDoesNothing(t *testing.T) {
	rec := &testutil.Recorder{}
	ctrl := breathing.NewController(breathing.WithPublisher(rec))

	require.False(t, ctrl.Tick())
	require.Equal(t, breathing.NewController().State(), ctrl.State())
	require.Empty(t, rec.Events())
}

func TestPauseThenStart_Resumes(t *testing.T) {
	ctrl := testutil.StartedController(4, 9)
	want := ctrl.State()

	ctrl.Pause()
	require.False(t, ctrl.State().Active)
	require.True(t, ctrl.State().Paused())

	ctrl.Start()

	got := ctrl.State()
	require.True(t, got.Active)
	require.Equal(t, want.Phase, got.Phase)
	require.Equal(t, want.SecondsIntoPhase, got.SecondsIntoPhase)
	require.Equal(t, want.TotalElapsedSeconds, got.TotalElapsedSeconds)
}

func TestToggle(t *testing.T) {
	ctrl := breathing.NewController()

	ctrl.Toggle()
	require.True(t, ctrl.State().Active)
	require.Equal(t, breathing.Inhale, ctrl.State().Phase)

	ctrl.Toggle()
	require.False(t, ctrl.State().Active)
	require.Equal(t, breathing.Inhale, ctrl.State().Phase)
}

func TestReset_AlwaysReturnsToIdle(t *testing.T) {
	ctrl := testutil.StartedController(8, 75)
	require.NotZero(t, ctrl.State().CyclesCompleted)

	ctrl.Reset()

	require.Equal(t, breathing.State{
		Phase:                breathing.Idle,
		CycleDurationSeconds: 8,
		SecondsIntoPhase:     1,
	}, ctrl.State())
}

func TestScenario_DurationChangeWhileActiveResets(t *testing.T) {
	ctrl := testutil.StartedController(4, 3*16)
	require.Equal(t, 3, ctrl.State().CyclesCompleted)
	require.True(t, ctrl.State().Active)

	require.NoError(t, ctrl.SetCycleDuration(6))

	s := ctrl.State()
	require.Equal(t, 0, s.CyclesCompleted)
	require.False(t, s.Active)
	require.Equal(t, breathing.Idle, s.Phase)
	require.Equal(t, 1, s.SecondsIntoPhase)
	require.Equal(t, 0, s.TotalElapsedSeconds)
	require.Equal(t, 6, s.CycleDurationSeconds)
}

func TestSetCycleDuration_RejectsUnsupported(t *testing.T) {
	rec := &testutil.Recorder{}
	ctrl := testutil.StartedController(4, 5, breathing.WithPublisher(rec))
	before := ctrl.State()
	rec.Clear()

	err := ctrl.SetCycleDuration(5)

	require.ErrorIs(t, err, breathing.ErrUnsupportedDuration)
	require.Equal(t, before, ctrl.State())
	require.Empty(t, rec.Events())
}

func TestEvents_StartFromIdle(t *testing.T) {
	rec := &testutil.Recorder{}
	ctrl := breathing.NewController(breathing.WithPublisher(rec))

	ctrl.Start()

	events := rec.Events()
	require.Len(t, events, 2)
	require.Equal(t, breathing.EventStarted, events[0].Type)
	require.Equal(t, breathing.EventPhaseChanged, events[1].Type)
	require.Equal(t, breathing.Idle, events[1].Transition.From)
	require.Equal(t, breathing.Inhale, events[1].Transition.To)
	require.True(t, events[1].Transition.State.Active)
}

func TestEvents_Lifecycle(t *testing.T) {
	rec := &testutil.Recorder{}
	ctrl := breathing.NewController(breathing.WithCycleDuration(4), breathing.WithPublisher(rec))

	ctrl.Start()
	testutil.Ticks(ctrl, 4)
	ctrl.Pause()
	ctrl.Start()
	ctrl.Reset()
	require.NoError(t, ctrl.SetCycleDuration(10))

	require.Equal(t, []pubsub.EventType{
		breathing.EventStarted,
		breathing.EventPhaseChanged,
		breathing.EventPhaseChanged,
		breathing.EventPaused,
		breathing.EventResumed,
		breathing.EventReset,
		breathing.EventDurationChanged,
	}, rec.Types())

	events := rec.Events()
	require.Equal(t, breathing.HoldIn, events[2].Transition.To)
	require.Equal(t, breathing.HoldIn, events[5].Transition.From, "reset reports the phase it left")
	require.Equal(t, breathing.Idle, events[5].Transition.To)
	require.Equal(t, 10, events[6].Transition.State.CycleDurationSeconds)
	require.Equal(t, 4, events[5].Transition.Previous.TotalElapsedSeconds, "reset carries the discarded session")
	require.Zero(t, events[5].Transition.State.TotalElapsedSeconds)
	require.Zero(t, events[2].Transition.Previous, "only resets carry a previous snapshot")
}

func TestEvents_PausedControllerDoesNotPublishAgain(t *testing.T) {
	rec := &testutil.Recorder{}
	ctrl := breathing.NewController(breathing.WithPublisher(rec))

	ctrl.Pause()
	require.Empty(t, rec.Events())
}

func TestEvents_OnePhaseChangePerBoundary(t *testing.T) {
	rec := &testutil.Recorder{}
	ctrl := testutil.StartedController(4, 32, breathing.WithPublisher(rec))

	require.Equal(t, []breathing.Phase{
		breathing.Inhale,
		breathing.HoldIn, breathing.Exhale, breathing.HoldOut, breathing.Inhale,
		breathing.HoldIn, breathing.Exhale, breathing.HoldOut, breathing.Inhale,
	}, rec.PhaseChanges())
	require.Equal(t, 2, ctrl.State().CyclesCompleted)
}
