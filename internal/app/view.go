// Package app hosts the windowed frontend.
package app

import (
	"errors"
	"image/color"

	"defrag-timer/internal/render"
	"defrag-timer/internal/sims/defrag"
	"defrag-timer/internal/ui"
)

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("app: GUI support requires building with -tags ebiten")

const windowTitle = "Disk Defragmenter"

// minPanelHeight fits the clock, the action buttons and four controls.
const minPanelHeight = 300

var background = color.RGBA{R: 8, G: 8, B: 10, A: 255}

// View is the pixel geometry of the window.
type View struct {
	Blocks     render.BlockLayout
	GridWidth  int
	PanelWidth int
	Width      int
	Height     int
}

// NewView lays the disk out to the left of the HUD panel.
func NewView(cfg defrag.Config) View {
	blocks := render.BlockLayout{
		Cols: cfg.Grid.Columns,
		Rows: cfg.Grid.Rows,
		Cell: cfg.Display.CellSize,
		Gap:  cfg.Display.Gap,
	}
	w, h := blocks.Size()
	return View{
		Blocks:     blocks,
		GridWidth:  w,
		PanelWidth: ui.PanelWidth,
		Width:      w + ui.PanelWidth,
		Height:     max(h, minPanelHeight),
	}
}

// LegendEntries lists the palette in display order.
func LegendEntries(p defrag.Palette) []ui.LegendEntry {
	colors := defrag.Colors()
	out := make([]ui.LegendEntry, 0, len(colors))
	for _, c := range colors {
		out = append(out, ui.LegendEntry{Label: c.String(), Color: p[c]})
	}
	return out
}
