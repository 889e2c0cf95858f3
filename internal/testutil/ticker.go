// Package testutil provides fakes for driving breathing sessions in tests
// without real time passing.
package testutil

import (
	"sync"
	"time"

	"github.com/zjrosen/breathe/internal/breathing"
)

// FakeTicker is a breathing.Ticker fired by hand.
type FakeTicker struct {
	mu       sync.Mutex
	ch       chan time.Time
	stopped  bool
	interval time.Duration
	now      time.Time
}

// NewFakeTicker creates a ticker that buffers up to 16 unconsumed ticks.
func NewFakeTicker(interval time.Duration) *FakeTicker {
	return &FakeTicker{
		ch:       make(chan time.Time, 16),
		interval: interval,
		now:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// C implements breathing.Ticker.
func (f *FakeTicker) C() <-chan time.Time {
	return f.ch
}

// Stop implements breathing.Ticker.
func (f *FakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (f *FakeTicker) Stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// Fire delivers one tick unless the ticker is stopped or its buffer is full.
// Returns whether the tick was delivered.
func (f *FakeTicker) Fire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return false
	}
	f.now = f.now.Add(f.interval)
	select {
	case f.ch <- f.now:
		return true
	default:
		return false
	}
}

// TickerFactory hands out FakeTickers and remembers each one.
type TickerFactory struct {
	mu      sync.Mutex
	tickers []*FakeTicker
}

// New implements breathing.TickerFactory.
func (f *TickerFactory) New(d time.Duration) breathing.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := NewFakeTicker(d)
	f.tickers = append(f.tickers, t)
	return t
}

// Count returns how many tickers have been created.
func (f *TickerFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// Last returns the most recently created ticker, or nil.
func (f *TickerFactory) Last() *FakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tickers) == 0 {
		return nil
	}
	return f.tickers[len(f.tickers)-1]
}

// All returns every ticker created so far.
func (f *TickerFactory) All() []*FakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*FakeTicker, len(f.tickers))
	copy(out, f.tickers)
	return out
}
