package breathing

import "fmt"

// State is the session state owned by a Controller. Values handed out by
// Controller.State are snapshots; mutating them has no effect.
type State struct {
	Phase                Phase
	CycleDurationSeconds int
	SecondsIntoPhase     int
	Active               bool
	CyclesCompleted      int
	TotalElapsedSeconds  int
}

func initialState(duration int) State {
	return State{
		Phase:                Idle,
		CycleDurationSeconds: duration,
		SecondsIntoPhase:     1,
	}
}

// RemainingSeconds is the countdown shown for the current phase, from
// CycleDurationSeconds down to 1.
func (s State) RemainingSeconds() int {
	return s.CycleDurationSeconds - s.SecondsIntoPhase + 1
}

// PhaseProgress is the fraction of the current phase that has elapsed, in (0, 1].
// Idle has no progress.
func (s State) PhaseProgress() float64 {
	if s.Phase == Idle || s.CycleDurationSeconds <= 0 {
		return 0
	}
	return float64(s.SecondsIntoPhase) / float64(s.CycleDurationSeconds)
}

// Paused reports a session that was started and then paused.
func (s State) Paused() bool {
	return !s.Active && s.Phase != Idle
}

// Expansion is how full the lungs should be, from 0 (empty) to 1 (full).
// Inhale fills over the phase, exhale empties, holds keep their level.
func (s State) Expansion() float64 {
	switch s.Phase {
	case Inhale:
		return s.PhaseProgress()
	case HoldIn:
		return 1
	case Exhale:
		return 1 - s.PhaseProgress()
	default:
		return 0
	}
}

// Valid checks the state invariants.
func (s State) Valid() error {
	if !IsSupportedDuration(s.CycleDurationSeconds) {
		return fmt.Errorf("%w: %d", ErrUnsupportedDuration, s.CycleDurationSeconds)
	}
	if s.SecondsIntoPhase < 1 || s.SecondsIntoPhase > s.CycleDurationSeconds {
		return fmt.Errorf("seconds into phase %d outside [1, %d]", s.SecondsIntoPhase, s.CycleDurationSeconds)
	}
	if s.Phase == Idle && s.Active {
		return fmt.Errorf("active session in idle phase")
	}
	if s.CyclesCompleted < 0 || s.TotalElapsedSeconds < 0 {
		return fmt.Errorf("negative counters")
	}
	return nil
}
