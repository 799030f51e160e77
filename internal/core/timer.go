package core

import "time"

// Stopwatch accumulates running time across start/stop cycles. Callers pass
// the current time explicitly so the accumulator stays deterministic in tests.
type Stopwatch struct {
	accumulated time.Duration
	started     time.Time
	running     bool
}

// Start resumes accumulation from now. Starting a running stopwatch is a no-op.
func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.started = now
	s.running = true
}

// Stop folds the time since the last Start into the accumulator.
func (s *Stopwatch) Stop(now time.Time) {
	if !s.running {
		return
	}
	s.accumulated += nonNegative(now.Sub(s.started))
	s.running = false
}

// Reset clears the accumulator and stops the stopwatch.
func (s *Stopwatch) Reset() {
	s.accumulated = 0
	s.started = time.Time{}
	s.running = false
}

// Running reports whether the stopwatch is accumulating.
func (s *Stopwatch) Running() bool { return s.running }

// Elapsed returns the accumulated running time as of now.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return s.accumulated
	}
	return s.accumulated + nonNegative(now.Sub(s.started))
}

// clocks can step backwards (NTP, tests); never let that shrink the total
func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
