// Package sched runs fire-once tasks on keyed timers. Scheduling a task for
// a key that already has one pending replaces the pending task, so a later
// action supersedes an earlier cosmetic reset instead of racing it.
package sched

import (
	"sync"
	"time"
)

// Scheduler owns a set of pending keyed tasks.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// New constructs an empty scheduler.
func New() *Scheduler {
	return &Scheduler{pending: make(map[string]*time.Timer)}
}

// Schedule arranges fn to run after delay, replacing any task already
// pending for the key. A non-positive delay runs fn immediately on the
// calling goroutine.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	if s == nil || fn == nil {
		return
	}
	if delay <= 0 {
		s.Cancel(key)
		fn()
		return
	}
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if prev, ok := s.pending[key]; ok {
		prev.Stop()
	}
	s.pending[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, key)
		stopped := s.stopped
		s.mu.Unlock()
		if !stopped {
			fn()
		}
	})
	s.mu.Unlock()
}

// Cancel drops the pending task for the key, if any.
func (s *Scheduler) Cancel(key string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	if t, ok := s.pending[key]; ok {
		t.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()
}

// Stop cancels every pending task and rejects further scheduling.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.stopped = true
	for key, t := range s.pending {
		t.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()
}

// Pending reports the number of tasks currently scheduled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
