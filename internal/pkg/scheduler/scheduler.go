// Package scheduler abstracts deferred execution of staged work. The battle
// engine uses it to run the enemy turn after a short delay without leaking
// timers past the battle that scheduled them: every deferred stage returns a
// CancelFunc and torn-down battles cancel before dropping their state.
package scheduler

import (
	"sync"
	"time"
)

// CancelFunc cancels a scheduled function. Safe to call more than once;
// canceling after the function ran is a no-op.
type CancelFunc func()

// Scheduler runs a function after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// Real schedules on the runtime timer wheel via time.AfterFunc.
type Real struct{}

// New returns a new real scheduler
func New() Scheduler {
	return &Real{}
}

// AfterFunc schedules fn to run after d
func (s *Real) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Manual queues scheduled functions until the test drains them, so staged
// pipelines run deterministically and in submission order.
type Manual struct {
	mu      sync.Mutex
	pending []*manualEntry
}

type manualEntry struct {
	fn       func()
	canceled bool
}

// NewManual returns a new manual scheduler for tests
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc queues fn; the delay is ignored
func (s *Manual) AfterFunc(_ time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &manualEntry{fn: fn}
	s.pending = append(s.pending, entry)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry.canceled = true
	}
}

// RunPending runs every queued function that has not been canceled,
// including functions queued by the functions it runs. Returns the number
// of functions executed.
func (s *Manual) RunPending() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return ran
		}
		entry := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		if entry.canceled {
			continue
		}
		entry.fn()
		ran++
	}
}

// PendingCount reports how many queued functions have not run yet
func (s *Manual) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
