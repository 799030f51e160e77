//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// LegendEntry names one palette colour.
type LegendEntry struct {
	Label string
	Color color.RGBA
}

// Legend draws a key of the block colours over the disk view. L toggles it.
type Legend struct {
	entries []LegendEntry
	visible bool
	pixel   *ebiten.Image
}

// NewLegend constructs a legend for entries, initially visible.
func NewLegend(entries []LegendEntry) *Legend {
	l := &Legend{entries: entries, visible: true}
	l.pixel = ebiten.NewImage(1, 1)
	l.pixel.Fill(color.White)
	return l
}

// Update handles the toggle key.
func (l *Legend) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		l.visible = !l.visible
	}
}

// Draw renders the legend in the bottom-left corner of screen.
func (l *Legend) Draw(screen *ebiten.Image) {
	if !l.visible || len(l.entries) == 0 {
		return
	}
	const (
		pad    = 6
		swatch = 10
		row    = 16
		width  = 130
	)
	height := len(l.entries)*row + 2*pad
	y0 := screen.Bounds().Dy() - height - pad
	if y0 < 0 {
		y0 = 0
	}
	l.fillRect(screen, pad, y0, width, height, color.RGBA{R: 0, G: 0, B: 0, A: 180})

	face := basicfont.Face7x13
	for i, e := range l.entries {
		y := y0 + pad + i*row
		l.fillRect(screen, 2*pad, y+(row-swatch)/2, swatch, swatch, e.Color)
		text.Draw(screen, e.Label, face, 2*pad+swatch+pad, y+row-4, color.White)
	}
}

func (l *Legend) fillRect(dst *ebiten.Image, x, y, w, h int, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(l.pixel, op)
}
