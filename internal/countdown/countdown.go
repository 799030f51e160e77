// Package countdown tracks a target duration through an explicit
// Idle/Running/Paused/Completed state machine and derives the progress and
// animation phase the disk renderer consumes.
package countdown

import (
	"time"

	"defrag-timer/internal/core"
)

// PhaseInterval is the elapsed running time per animation phase unit.
const PhaseInterval = 70 * time.Millisecond

// State is a countdown lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Timer counts running time toward a target.
type Timer struct {
	target time.Duration
	state  State
	watch  core.Stopwatch
}

// New returns an idle timer for target. Negative targets are treated as zero.
func New(target time.Duration) *Timer {
	if target < 0 {
		target = 0
	}
	return &Timer{target: target}
}

// State returns the current lifecycle state.
func (t *Timer) State() State { return t.state }

// Target returns the configured duration.
func (t *Timer) Target() time.Duration { return t.target }

// Start moves Idle or Paused to Running. It reports whether the state changed.
func (t *Timer) Start(now time.Time) bool {
	switch t.state {
	case Idle, Paused:
		t.watch.Start(now)
		t.state = Running
		return true
	default:
		return false
	}
}

// Pause moves Running to Paused. It reports whether the state changed.
func (t *Timer) Pause(now time.Time) bool {
	if t.state != Running {
		return false
	}
	t.watch.Stop(now)
	t.state = Paused
	return true
}

// Toggle pauses a running timer and starts anything else that can start.
func (t *Timer) Toggle(now time.Time) bool {
	if t.state == Running {
		return t.Pause(now)
	}
	return t.Start(now)
}

// Reset returns to Idle with no elapsed time.
func (t *Timer) Reset() {
	t.watch.Reset()
	t.state = Idle
}

// SetTarget changes the target and resets the timer.
func (t *Timer) SetTarget(target time.Duration) {
	if target < 0 {
		target = 0
	}
	t.target = target
	t.Reset()
}

// Update completes a running timer whose elapsed time reached the target.
// It reports whether this call made the transition.
func (t *Timer) Update(now time.Time) bool {
	if t.state != Running {
		return false
	}
	if t.watch.Elapsed(now) < t.target {
		return false
	}
	t.watch.Stop(now)
	t.state = Completed
	return true
}

// Elapsed returns the running time accumulated as of now.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	return t.watch.Elapsed(now)
}

// Remaining returns the time left, never negative.
func (t *Timer) Remaining(now time.Time) time.Duration {
	left := t.target - t.Elapsed(now)
	if left < 0 || t.state == Completed {
		return 0
	}
	return left
}

// Progress returns elapsed/target clamped to [0,1]. A completed timer or a
// zero target reports 1 once started.
func (t *Timer) Progress(now time.Time) float64 {
	if t.state == Completed {
		return 1
	}
	if t.target <= 0 {
		if t.state == Idle {
			return 0
		}
		return 1
	}
	p := float64(t.Elapsed(now)) / float64(t.target)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Phase returns the number of whole intervals elapsed. A non-positive
// interval falls back to PhaseInterval.
func (t *Timer) Phase(now time.Time, interval time.Duration) int {
	if interval <= 0 {
		interval = PhaseInterval
	}
	return int(t.Elapsed(now) / interval)
}
