//go:build !ebiten

package chime

import "github.com/charmbracelet/log"

// Player is silent in headless builds.
type Player struct{}

// NewPlayer returns a silent player.
func NewPlayer([]Note, float64, *log.Logger) *Player { return &Player{} }

// Play is a no-op in headless builds.
func (p *Player) Play() {}
