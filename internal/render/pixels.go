// Package render converts palette-indexed cell grids into RGBA pixels.
package render

import "image/color"

// BlockLayout describes how cells map onto pixels: each cell is a Cell x Cell
// square separated from its neighbours (and the image edge) by Gap pixels.
type BlockLayout struct {
	Cols, Rows int
	Cell, Gap  int
}

// Size returns the pixel dimensions of the whole grid.
func (b BlockLayout) Size() (int, int) {
	return b.Cols*(b.Cell+b.Gap) + b.Gap, b.Rows*(b.Cell+b.Gap) + b.Gap
}

// CellAt returns the cell under pixel (px, py), or ok=false for gaps and
// points outside the grid.
func (b BlockLayout) CellAt(px, py int) (x, y int, ok bool) {
	pitch := b.Cell + b.Gap
	if pitch <= 0 || px < b.Gap || py < b.Gap {
		return 0, 0, false
	}
	x, ox := (px-b.Gap)/pitch, (px-b.Gap)%pitch
	y, oy := (py-b.Gap)/pitch, (py-b.Gap)%pitch
	if x >= b.Cols || y >= b.Rows || ox >= b.Cell || oy >= b.Cell {
		return 0, 0, false
	}
	return x, y, true
}

// fillBlocksRGBA paints cells into buf as gapped blocks. Values past the end
// of the palette use its last entry; an empty palette clears to transparent.
// buf must hold 4*w*h bytes for the layout's Size.
func fillBlocksRGBA(buf []byte, b BlockLayout, cells []uint8, palette []color.RGBA, background color.RGBA) {
	w, h := b.Size()
	if len(buf) < 4*w*h || len(cells) < b.Cols*b.Rows {
		return
	}
	if len(palette) == 0 {
		fillRGBA(buf[:4*w*h], color.RGBA{})
		return
	}
	fillRGBA(buf[:4*w*h], background)

	last := len(palette) - 1
	pitch := b.Cell + b.Gap
	for cy := 0; cy < b.Rows; cy++ {
		for cx := 0; cx < b.Cols; cx++ {
			idx := int(cells[cy*b.Cols+cx])
			if idx > last {
				idx = last
			}
			col := palette[idx]
			x0 := b.Gap + cx*pitch
			y0 := b.Gap + cy*pitch
			for y := y0; y < y0+b.Cell; y++ {
				row := buf[4*(y*w+x0) : 4*(y*w+x0+b.Cell)]
				fillRGBA(row, col)
			}
		}
	}
}

func fillRGBA(buf []byte, col color.RGBA) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = col.R
		buf[i+1] = col.G
		buf[i+2] = col.B
		buf[i+3] = col.A
	}
}
