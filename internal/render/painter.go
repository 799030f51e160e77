//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps a single RGBA image in sync with palette-indexed cells.
type GridPainter struct {
	layout     BlockLayout
	img        *ebiten.Image
	buf        []byte
	palette    []color.RGBA
	background color.RGBA
}

// NewGridPainter allocates a painter for the given block layout.
func NewGridPainter(layout BlockLayout, palette []color.RGBA, background color.RGBA) *GridPainter {
	w, h := layout.Size()
	return &GridPainter{
		layout:     layout,
		img:        ebiten.NewImage(w, h),
		buf:        make([]byte, 4*w*h),
		palette:    palette,
		background: background,
	}
}

// Blit uploads the provided cells into the painter image and draws it at
// the origin of dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8) {
	if len(cells) != gp.layout.Cols*gp.layout.Rows {
		return
	}
	fillBlocksRGBA(gp.buf, gp.layout, cells, gp.palette, gp.background)
	gp.img.WritePixels(gp.buf)
	dst.DrawImage(gp.img, &ebiten.DrawImageOptions{})
}

// Size returns the pixel dimensions of the painted grid.
func (gp *GridPainter) Size() (int, int) { return gp.layout.Size() }
