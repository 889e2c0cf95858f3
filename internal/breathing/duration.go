package breathing

import (
	"errors"
	"slices"
)

// DefaultCycleDuration is the seconds-per-phase used before the user picks one.
const DefaultCycleDuration = 4

// ErrUnsupportedDuration is returned when a duration outside SupportedDurations is requested.
var ErrUnsupportedDuration = errors.New("unsupported cycle duration")

var supportedDurations = []int{4, 6, 8, 10}

// SupportedDurations returns the selectable seconds-per-phase values in ascending order.
func SupportedDurations() []int {
	return slices.Clone(supportedDurations)
}

// IsSupportedDuration reports whether seconds is a selectable duration.
func IsSupportedDuration(seconds int) bool {
	return slices.Contains(supportedDurations, seconds)
}

// StepDuration returns the supported duration delta steps away from current,
// clamped to the ends of the list. An unsupported current value starts from
// the default.
func StepDuration(current, delta int) int {
	idx := slices.Index(supportedDurations, current)
	if idx < 0 {
		idx = slices.Index(supportedDurations, DefaultCycleDuration)
	}
	idx = max(0, min(len(supportedDurations)-1, idx+delta))
	return supportedDurations[idx]
}
