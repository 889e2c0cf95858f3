// Package breathing implements the square-breathing cycle: four phases of
// equal length driven forward one second per tick.
package breathing

import "fmt"

// Phase is one quarter of the breathing square, or Idle when no session runs.
type Phase int

const (
	Idle Phase = iota
	Inhale
	HoldIn
	Exhale
	HoldOut
)

var phaseNames = map[Phase]string{
	Idle:    "idle",
	Inhale:  "inhale",
	HoldIn:  "hold_in",
	Exhale:  "exhale",
	HoldOut: "hold_out",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ParsePhase converts a phase name back into a Phase.
func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return Idle, fmt.Errorf("unknown phase %q", s)
}

// transitions is the only place the cycle order is defined.
// Idle enters the cycle at Inhale.
var transitions = map[Phase]Phase{
	Idle:    Inhale,
	Inhale:  HoldIn,
	HoldIn:  Exhale,
	Exhale:  HoldOut,
	HoldOut: Inhale,
}

// cycleCompleting marks the transitions that finish one full square.
var cycleCompleting = map[[2]Phase]bool{
	{HoldOut, Inhale}: true,
}

// Next returns the phase that follows p.
func Next(p Phase) Phase {
	if next, ok := transitions[p]; ok {
		return next
	}
	return Inhale
}

// CompletesCycle reports whether moving from one phase to another finishes a cycle.
func CompletesCycle(from, to Phase) bool {
	return cycleCompleting[[2]Phase{from, to}]
}

// ActivePhases returns the four breathing phases in cycle order.
func ActivePhases() []Phase {
	return []Phase{Inhale, HoldIn, Exhale, HoldOut}
}

// IsActivePhase reports whether p is one of the four breathing phases.
func (p Phase) IsActivePhase() bool {
	return p >= Inhale && p <= HoldOut
}
