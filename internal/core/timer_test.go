package core

import (
	"testing"
	"time"
)

func TestStopwatchAccumulatesAcrossPauses(t *testing.T) {
	base := time.Unix(1000, 0)
	var sw Stopwatch

	if got := sw.Elapsed(base); got != 0 {
		t.Fatalf("fresh stopwatch elapsed %v, want 0", got)
	}

	sw.Start(base)
	if got := sw.Elapsed(base.Add(2 * time.Second)); got != 2*time.Second {
		t.Fatalf("running elapsed %v, want 2s", got)
	}
	sw.Stop(base.Add(3 * time.Second))
	if got := sw.Elapsed(base.Add(10 * time.Second)); got != 3*time.Second {
		t.Fatalf("stopped elapsed %v, want 3s", got)
	}

	sw.Start(base.Add(20 * time.Second))
	sw.Start(base.Add(25 * time.Second))
	if got := sw.Elapsed(base.Add(21 * time.Second)); got != 4*time.Second {
		t.Fatalf("second start must be ignored, elapsed %v want 4s", got)
	}

	sw.Reset()
	if sw.Running() || sw.Elapsed(base.Add(time.Hour)) != 0 {
		t.Fatal("Reset must stop and clear the stopwatch")
	}
}

func TestStopwatchIgnoresBackwardClock(t *testing.T) {
	base := time.Unix(1000, 0)
	var sw Stopwatch
	sw.Start(base)
	if got := sw.Elapsed(base.Add(-time.Second)); got != 0 {
		t.Fatalf("elapsed %v for backwards clock, want 0", got)
	}
	sw.Stop(base.Add(-time.Second))
	if got := sw.Elapsed(base); got != 0 {
		t.Fatalf("elapsed %v after backwards stop, want 0", got)
	}
}
