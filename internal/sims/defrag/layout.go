package defrag

import (
	"errors"
	"fmt"

	"defrag-timer/internal/core"
)

// ErrInvalidConfiguration reports grid geometry, proportions or display
// settings that cannot produce a layout.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ShufflePasses is the number of Fisher–Yates passes applied to the movable
// region of a freshly generated layout.
const ShufflePasses = 5

// Class categorises a single disk block.
type Class uint8

const (
	ClassSystem Class = iota
	ClassFree
	ClassContinuous
	ClassFragmented
	// ClassProcessed only appears in the renderer's working copy; Generate
	// never produces it.
	ClassProcessed
)

func (c Class) String() string {
	switch c {
	case ClassSystem:
		return "system"
	case ClassFree:
		return "free"
	case ClassContinuous:
		return "continuous"
	case ClassFragmented:
		return "fragmented"
	case ClassProcessed:
		return "processed"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// IsData reports whether the class holds file data that still needs work.
func (c Class) IsData() bool {
	return c == ClassContinuous || c == ClassFragmented
}

// Geometry fixes the grid shape. The first UnmovableRows rows hold system
// blocks.
type Geometry struct {
	Rows          int `toml:"rows"`
	Columns       int `toml:"columns"`
	UnmovableRows int `toml:"unmovable_rows"`
}

// Size converts the geometry to a core.Size (W columns by H rows).
func (g Geometry) Size() core.Size { return core.Size{W: g.Columns, H: g.Rows} }

// Total returns the number of cells in the grid.
func (g Geometry) Total() int { return g.Rows * g.Columns }

// Validate rejects non-positive dimensions and system regions that do not fit.
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.Columns <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfiguration, g.Rows, g.Columns)
	}
	if g.UnmovableRows < 0 || g.UnmovableRows > g.Rows {
		return fmt.Errorf("%w: unmovable rows %d outside [0,%d]", ErrInvalidConfiguration, g.UnmovableRows, g.Rows)
	}
	return nil
}

// Proportions sets how the movable region is split, in whole percent.
type Proportions struct {
	FreeSpacePercent      int `toml:"free_space_percent"`
	FragmentedFilePercent int `toml:"fragmented_file_percent"`
}

// Validate rejects percentages outside [0,100].
func (p Proportions) Validate() error {
	if p.FreeSpacePercent < 0 || p.FreeSpacePercent > 100 {
		return fmt.Errorf("%w: free space percent %d outside [0,100]", ErrInvalidConfiguration, p.FreeSpacePercent)
	}
	if p.FragmentedFilePercent < 0 || p.FragmentedFilePercent > 100 {
		return fmt.Errorf("%w: fragmented file percent %d outside [0,100]", ErrInvalidConfiguration, p.FragmentedFilePercent)
	}
	return nil
}

// Counts holds the number of blocks in each class.
type Counts struct {
	System     int
	Free       int
	Continuous int
	Fragmented int
}

// Movable returns the number of non-system blocks.
func (c Counts) Movable() int { return c.Free + c.Continuous + c.Fragmented }

// Data returns the number of blocks holding file data.
func (c Counts) Data() int { return c.Continuous + c.Fragmented }

// Total returns the number of blocks across every class.
func (c Counts) Total() int { return c.System + c.Movable() }

// ComputeCounts derives the class counts for a geometry and proportions using
// floor semantics throughout.
func ComputeCounts(g Geometry, p Proportions) (Counts, error) {
	if err := g.Validate(); err != nil {
		return Counts{}, err
	}
	if err := p.Validate(); err != nil {
		return Counts{}, err
	}
	system := g.UnmovableRows * g.Columns
	movable := g.Total() - system
	free := movable * p.FreeSpacePercent / 100
	data := movable - free
	fragmented := data * p.FragmentedFilePercent / 100
	return Counts{
		System:     system,
		Free:       free,
		Continuous: data - fragmented,
		Fragmented: fragmented,
	}, nil
}

// Source supplies uniformly distributed ints in [0, n).
type Source interface {
	IntN(n int) int
}

// Layout is the initial classification of every block plus the order in
// which data blocks get processed. It is immutable after Generate returns.
type Layout struct {
	geometry Geometry
	counts   Counts
	cells    []Class
	queue    []int
}

// Generate builds a new layout. The movable region is filled fragmented,
// continuous then free, and shuffled ShufflePasses times; the system rows are
// never shuffled. A nil src draws from a fresh entropy-seeded generator.
func Generate(g Geometry, p Proportions, src Source) (*Layout, error) {
	counts, err := ComputeCounts(g, p)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = core.NewEntropyRNG()
	}

	cells := make([]Class, g.Total())
	for i := 0; i < counts.System; i++ {
		cells[i] = ClassSystem
	}
	movable := cells[counts.System:]
	idx := 0
	for n := 0; n < counts.Fragmented; n++ {
		movable[idx] = ClassFragmented
		idx++
	}
	for n := 0; n < counts.Continuous; n++ {
		movable[idx] = ClassContinuous
		idx++
	}
	for ; idx < len(movable); idx++ {
		movable[idx] = ClassFree
	}

	for pass := 0; pass < ShufflePasses; pass++ {
		shuffle(movable, src)
	}

	queue := make([]int, 0, counts.Data())
	for i, c := range cells {
		if c.IsData() {
			queue = append(queue, i)
		}
	}

	return &Layout{geometry: g, counts: counts, cells: cells, queue: queue}, nil
}

// shuffle is a backward Fisher–Yates pass.
func shuffle(cells []Class, src Source) {
	for i := len(cells) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
}

// Geometry returns the grid shape the layout was generated for.
func (l *Layout) Geometry() Geometry { return l.geometry }

// Counts returns the per-class block counts.
func (l *Layout) Counts() Counts { return l.counts }

// Len returns the number of blocks in the grid.
func (l *Layout) Len() int { return len(l.cells) }

// SystemCells returns the number of leading system blocks.
func (l *Layout) SystemCells() int { return l.counts.System }

// MovableCells returns the number of blocks after the system region.
func (l *Layout) MovableCells() int { return len(l.cells) - l.counts.System }

// At returns the initial class of block i.
func (l *Layout) At(i int) Class { return l.cells[i] }

// Cells returns a copy of the initial classification.
func (l *Layout) Cells() []Class { return append([]Class(nil), l.cells...) }

// Queue returns a copy of the data processing queue: the positions of every
// data block in ascending order.
func (l *Layout) Queue() []int { return append([]int(nil), l.queue...) }
