package mocks

import (
	"sort"
	"time"

	"github.com/garence/whackamole/internal/dependencies/timer"
)

// MockScheduler is a mock implementation of Scheduler for testing.
// Scheduled callbacks fire only when the test advances virtual time.
type MockScheduler struct {
	now     time.Duration
	nextID  int
	pending []*scheduledTask
}

type scheduledTask struct {
	id        int
	due       time.Duration
	fn        func()
	cancelled bool
}

// Ensure MockScheduler implements Scheduler
var _ timer.Scheduler = (*MockScheduler)(nil)

// NewMockScheduler creates a new MockScheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

// AfterFunc records the callback without running it
func (s *MockScheduler) AfterFunc(d time.Duration, f func()) timer.CancelFunc {
	task := &scheduledTask{
		id:  s.nextID,
		due: s.now + d,
		fn:  f,
	}
	s.nextID++
	s.pending = append(s.pending, task)
	return func() { task.cancelled = true }
}

// Advance moves virtual time forward, firing due callbacks in due-time order.
// Callbacks run synchronously on the calling goroutine; callbacks scheduled
// while advancing fire too if they fall within the window.
func (s *MockScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		task := s.nextDue(target)
		if task == nil {
			break
		}
		s.now = task.due
		task.fn()
	}
	s.now = target
}

// Pending returns the number of callbacks that have not fired or been cancelled
func (s *MockScheduler) Pending() int {
	count := 0
	for _, task := range s.pending {
		if !task.cancelled {
			count++
		}
	}
	return count
}

func (s *MockScheduler) nextDue(target time.Duration) *scheduledTask {
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].due < s.pending[j].due
	})
	for i, task := range s.pending {
		if task.due > target {
			break
		}
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		if task.cancelled {
			return s.nextDue(target)
		}
		return task
	}
	return nil
}
