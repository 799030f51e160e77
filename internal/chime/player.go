//go:build ebiten

package chime

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/speaker"
)

// Player plays the chime through the system speaker. The speaker is opened
// lazily on the first Play; failures are logged once and silence the player.
type Player struct {
	notes  []Note
	volume float64
	logger *log.Logger

	once sync.Once
	ok   bool
}

// NewPlayer returns a player for notes at volume.
func NewPlayer(notes []Note, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{notes: notes, volume: volume, logger: logger}
}

// Play starts the chime without blocking.
func (p *Player) Play() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
			p.logger.Warn("audio unavailable, chime disabled", "err", err)
			return
		}
		p.ok = true
	})
	if !p.ok {
		return
	}
	speaker.Play(Tone(p.notes, p.volume))
}
