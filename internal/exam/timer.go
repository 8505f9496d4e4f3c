package exam

import "time"

// The countdown is owned by the session itself: one ticking goroutine at
// most, started idempotently, stopped by any transition out of InProgress.
// Tests drive Tick directly instead of waiting on the wall clock.

// StartTimer launches the once-per-second countdown. A second call while
// the timer is running is a no-op, so a double start can never decrement
// twice per second. onExpire runs synchronously with the tick that reaches
// zero, outside the session lock.
func (s *Session) StartTimer(onExpire func()) bool {
	s.mu.Lock()
	if s.state != StateInProgress || s.timerStarted {
		s.mu.Unlock()
		return false
	}
	s.timerStarted = true
	stop := make(chan struct{})
	s.timerStop = stop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if s.Tick() {
					if onExpire != nil {
						onExpire()
					}
					return
				}
			}
		}
	}()
	return true
}

// Tick decrements the remaining time by one second, floored at zero, and
// reports whether this tick exhausted the clock. Ticks outside InProgress
// are ignored, so a straggling tick after submission changes nothing.
func (s *Session) Tick() (expired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.remainingSeconds == 0 {
		return false
	}
	s.remainingSeconds--
	return s.remainingSeconds == 0
}

// RemainingSeconds returns the countdown value.
func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingSeconds
}

// stopTimerLocked halts the ticking goroutine. Caller holds s.mu.
func (s *Session) stopTimerLocked() {
	if s.timerStarted {
		close(s.timerStop)
		s.timerStarted = false
	}
}
