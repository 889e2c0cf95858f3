package breathing

import (
	"time"

	"github.com/zjrosen/breathe/internal/log"
)

// Runner pairs a Controller with the periodic ticker that drives it. The
// ticker is held only while the session is active: Start acquires a lease,
// and Pause, Reset, SetCycleDuration and Close release it.
//
// Like the Controller, a Runner belongs to a single goroutine.
type Runner struct {
	ctrl      *Controller
	newTicker TickerFactory
	interval  time.Duration
	lease     *Lease
	leases    uint64
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTickerFactory replaces the real-time ticker.
func WithTickerFactory(f TickerFactory) RunnerOption {
	return func(r *Runner) {
		if f != nil {
			r.newTicker = f
		}
	}
}

// WithInterval changes the tick interval.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// NewRunner wraps ctrl.
func NewRunner(ctrl *Controller, opts ...RunnerOption) *Runner {
	r := &Runner{
		ctrl:      ctrl,
		newTicker: NewRealTicker,
		interval:  TickInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the controller's current state.
func (r *Runner) State() State {
	return r.ctrl.State()
}

// Lease returns the held ticker lease, or nil when the session is not active.
func (r *Runner) Lease() *Lease {
	return r.lease
}

// Start starts or resumes the session and acquires the ticker.
// Returns the lease to wait on.
func (r *Runner) Start() *Lease {
	r.ctrl.Start()
	r.acquire()
	return r.lease
}

// Pause pauses the session and releases the ticker.
func (r *Runner) Pause() {
	r.ctrl.Pause()
	r.release()
}

// Toggle pauses or starts. Returns the held lease, nil after a pause.
func (r *Runner) Toggle() *Lease {
	if r.ctrl.State().Active {
		r.Pause()
		return nil
	}
	return r.Start()
}

// Reset resets the session and releases the ticker.
func (r *Runner) Reset() {
	r.ctrl.Reset()
	r.release()
}

// SetCycleDuration changes the duration, which always resets the session.
// A rejected value leaves both the state and the ticker untouched.
func (r *Runner) SetCycleDuration(seconds int) error {
	if err := r.ctrl.SetCycleDuration(seconds); err != nil {
		return err
	}
	r.release()
	return nil
}

// Tick advances the controller for a tick delivered by the lease with the
// given ID. Ticks from released or superseded leases are dropped.
// Returns whether the phase changed.
func (r *Runner) Tick(leaseID uint64) bool {
	if r.lease == nil || r.lease.ID() != leaseID || r.lease.Released() {
		log.Debug(log.CatTimer, "Dropped stale tick", "lease", leaseID)
		return false
	}
	if !r.ctrl.State().Active {
		r.release()
		return false
	}
	return r.ctrl.Tick()
}

// Close releases the ticker. The runner must not be used afterwards.
func (r *Runner) Close() {
	r.release()
}

func (r *Runner) acquire() {
	if r.lease != nil || !r.ctrl.State().Active {
		return
	}
	r.leases++
	r.lease = newLease(r.leases, r.newTicker(r.interval))
	log.Debug(log.CatTimer, "Ticker acquired", "lease", r.leases)
}

func (r *Runner) release() {
	if r.lease == nil {
		return
	}
	r.lease.Release()
	log.Debug(log.CatTimer, "Ticker released", "lease", r.lease.ID())
	r.lease = nil
}
