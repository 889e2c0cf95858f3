package testutil

import "github.com/zjrosen/breathe/internal/breathing"

// Ticks calls ctrl.Tick n times.
func Ticks(ctrl *breathing.Controller, n int) {
	for range n {
		ctrl.Tick()
	}
}

// StartedController returns an active controller with the given duration that
// has already received the given number of ticks.
func StartedController(duration, ticks int, opts ...breathing.Option) *breathing.Controller {
	opts = append([]breathing.Option{breathing.WithCycleDuration(duration)}, opts...)
	ctrl := breathing.NewController(opts...)
	ctrl.Start()
	Ticks(ctrl, ticks)
	return ctrl
}
