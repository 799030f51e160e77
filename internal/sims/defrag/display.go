package defrag

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps every Color to the RGBA value it is drawn with.
type Palette [numColors]color.RGBA

// DefaultPalette mirrors the classic defragmenter look.
func DefaultPalette() Palette {
	return Palette{
		ColorSystem:     {R: 176, G: 32, B: 32, A: 255},
		ColorFree:       {R: 236, G: 236, B: 236, A: 255},
		ColorContinuous: {R: 40, G: 80, B: 200, A: 255},
		ColorFragmented: {R: 220, G: 60, B: 60, A: 255},
		ColorProcessed:  {R: 20, G: 170, B: 200, A: 255},
		ColorReading:    {R: 40, G: 200, B: 80, A: 255},
		ColorMoving:     {R: 250, G: 210, B: 40, A: 255},
	}
}

// RGBA returns the palette as a slice in index order, suitable for the
// render package's palette fill.
func (p Palette) RGBA() []color.RGBA {
	return append([]color.RGBA(nil), p[:]...)
}

// Hex formats the colour for c as #rrggbb.
func (p Palette) Hex(c Color) string {
	if int(c) >= len(p) {
		c = ColorFree
	}
	cf, _ := colorful.MakeColor(p[c])
	return cf.Hex()
}

// PaletteOverrides names optional hex replacements for palette entries.
type PaletteOverrides struct {
	System     string `toml:"system"`
	Free       string `toml:"free"`
	Continuous string `toml:"continuous"`
	Fragmented string `toml:"fragmented"`
	Processed  string `toml:"processed"`
	Reading    string `toml:"reading"`
	Moving     string `toml:"moving"`
}

func (o PaletteOverrides) entries() [numColors]string {
	return [numColors]string{
		ColorSystem:     o.System,
		ColorFree:       o.Free,
		ColorContinuous: o.Continuous,
		ColorFragmented: o.Fragmented,
		ColorProcessed:  o.Processed,
		ColorReading:    o.Reading,
		ColorMoving:     o.Moving,
	}
}

// Apply returns base with every non-empty override parsed and substituted.
// Overrides are checked in palette order, so the first bad entry is reported.
func (o PaletteOverrides) Apply(base Palette) (Palette, error) {
	entries := o.entries()
	for _, c := range Colors() {
		hex := entries[c]
		if hex == "" {
			continue
		}
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return base, fmt.Errorf("%w: palette %s: %q is not a #rrggbb colour", ErrInvalidConfiguration, c, hex)
		}
		r, g, b := parsed.RGB255()
		base[c] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return base, nil
}

// Palette exposes the colours the disk is drawn with.
func (d *Disk) Palette() Palette { return d.palette }
