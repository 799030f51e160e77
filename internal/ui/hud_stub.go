//go:build !ebiten

package ui

import "defrag-timer/internal/core"

// PanelWidth is the default HUD width in pixels.
const PanelWidth = 220

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int, int) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int) {}
