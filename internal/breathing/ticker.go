package breathing

import (
	"sync"
	"time"
)

// TickInterval is the real-time length of one tick.
const TickInterval = time.Second

// Ticker is a periodic time source. It matches the shape of *time.Ticker so
// tests can drive ticks by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// Lease is one acquisition of a Ticker. Once released it never delivers
// another tick, even if the underlying ticker had one buffered.
type Lease struct {
	id     uint64
	ticker Ticker
	done   chan struct{}
	once   sync.Once
}

func newLease(id uint64, t Ticker) *Lease {
	return &Lease{id: id, ticker: t, done: make(chan struct{})}
}

// ID identifies the lease; a new one is issued on every acquisition.
func (l *Lease) ID() uint64 {
	return l.id
}

// Wait blocks until the next tick (ok=true) or until the lease is released
// (ok=false). Safe to call from a goroutine other than the owner.
func (l *Lease) Wait() (time.Time, bool) {
	select {
	case <-l.done:
		return time.Time{}, false
	default:
	}

	select {
	case <-l.done:
		return time.Time{}, false
	case ts := <-l.ticker.C():
		select {
		case <-l.done:
			return time.Time{}, false
		default:
			return ts, true
		}
	}
}

// Released reports whether Release has been called.
func (l *Lease) Released() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Release stops the ticker and wakes any Wait. Idempotent.
func (l *Lease) Release() {
	l.once.Do(func() {
		l.ticker.Stop()
		close(l.done)
	})
}
