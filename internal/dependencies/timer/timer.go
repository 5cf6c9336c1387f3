package timer

import "time"

// Scheduler schedules one-shot callbacks after a delay. It can be mocked
// for testing so timed game activities run deterministically.
type Scheduler interface {
	// AfterFunc runs f in its own goroutine after d has elapsed.
	// The returned CancelFunc stops the callback if it has not fired yet.
	AfterFunc(d time.Duration, f func()) CancelFunc
}

// CancelFunc cancels a scheduled callback. Safe to call more than once.
type CancelFunc func()

// RealScheduler implements Scheduler using the runtime timer
type RealScheduler struct{}

// New creates a new RealScheduler
func New() *RealScheduler {
	return &RealScheduler{}
}

// AfterFunc schedules f via time.AfterFunc
func (s *RealScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}
