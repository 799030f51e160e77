// Package chime synthesises the tone played when a countdown completes.
package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every chime streamer is generated at.
const SampleRate = beep.SampleRate(44100)

// Note is one sine partial of the chime.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// DefaultNotes is a falling major third, E6 then C6.
var DefaultNotes = []Note{
	{Freq: 1318.51, Duration: 180 * time.Millisecond},
	{Freq: 1046.50, Duration: 420 * time.Millisecond},
}

type sine struct {
	freq     float64
	phase    float64
	position int
	length   int
	release  int
	rate     beep.SampleRate
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) *sine {
	length := rate.N(d)
	return &sine{freq: freq, length: length, release: length / 2, rate: rate}
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * s.phase)
		if left := s.length - s.position; left < s.release {
			val *= float64(left) / float64(s.release)
		}
		samples[i][0] = val
		samples[i][1] = val
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// Tone returns the chime for notes played back to back at the given volume
// (0..1). A non-positive volume yields a silent streamer of the same length.
func Tone(notes []Note, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.Duration <= 0 || n.Freq <= 0 {
			continue
		}
		parts = append(parts, newSine(n.Freq, n.Duration, SampleRate))
	}
	seq := beep.Seq(parts...)
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(math.Min(volume, 1))}
}

// Length returns the total duration of notes, skipping invalid ones.
func Length(notes []Note) time.Duration {
	var total time.Duration
	for _, n := range notes {
		if n.Duration > 0 && n.Freq > 0 {
			total += n.Duration
		}
	}
	return total
}
