package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// scheduler is a process-wide one-shot timer facility. Each registration
// fires its callback at most once, at or after the requested instant, on
// its own goroutine. There is no ordering guarantee between callbacks.
type scheduler struct {
	a       *postPilot
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func (a *postPilot) initScheduler() {
	if a.sched != nil {
		return
	}
	a.sched = &scheduler{
		a:      a,
		timers: map[string]*time.Timer{},
	}
	a.shutdown.Add(func() {
		a.sched.stop()
		a.info("Scheduler stopped")
	})
}

// scheduleOnce registers a one-shot callback and returns a handle that
// can be used to cancel it. A runAt in the past fires as soon as
// practicable.
func (s *scheduler) scheduleOnce(runAt time.Time, callback func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ""
	}
	handle := uuid.NewString()
	s.timers[handle] = time.AfterFunc(max(time.Until(runAt), 0), func() {
		s.mu.Lock()
		delete(s.timers, handle)
		stopped := s.stopped
		s.mu.Unlock()
		if stopped {
			return
		}
		// A panicking callback must not take the facility down
		defer func() {
			if r := recover(); r != nil {
				s.a.error("Recovered from panic in scheduled callback", "recovered", r)
			}
		}()
		callback()
	})
	return handle
}

// cancel stops a pending registration. Canceling an unknown or already
// fired handle does nothing.
func (s *scheduler) cancel(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[handle]; ok {
		timer.Stop()
		delete(s.timers, handle)
	}
}

func (s *scheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
}

func (s *scheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
