//go:build !ebiten

package ui

import "image/color"

// LegendEntry names one palette colour.
type LegendEntry struct {
	Label string
	Color color.RGBA
}

// Legend is a no-op placeholder used when the ebiten build tag is absent.
type Legend struct{}

// NewLegend constructs a stub legend.
func NewLegend([]LegendEntry) *Legend { return &Legend{} }

// Update is a no-op in headless builds.
func (l *Legend) Update() {}

// Draw is a no-op placeholder.
func (l *Legend) Draw(any) {}
