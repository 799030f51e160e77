package defrag

import "math"

// Color is a palette index for a rendered block.
type Color uint8

const (
	ColorSystem Color = iota
	ColorFree
	ColorContinuous
	ColorFragmented
	ColorProcessed
	ColorReading
	ColorMoving

	numColors
)

func (c Color) String() string {
	switch c {
	case ColorSystem:
		return "system"
	case ColorFree:
		return "free"
	case ColorContinuous:
		return "continuous"
	case ColorFragmented:
		return "fragmented"
	case ColorProcessed:
		return "processed"
	case ColorReading:
		return "reading"
	case ColorMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// Colors lists every palette entry in index order.
func Colors() []Color {
	out := make([]Color, numColors)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}

// Animation sub-phases of the active block. Each lasts one phase tick.
const (
	cycleRead = iota
	cycleMove
	cycleSettle

	cycleLength
)

// FrameInput is everything the renderer needs from the countdown.
type FrameInput struct {
	Progress  float64
	Phase     int
	Running   bool
	Completed bool
}

// Render returns the colour of every block for one frame. The layout is
// never modified.
func Render(l *Layout, in FrameInput) []Color {
	if l == nil {
		return nil
	}
	dst := make([]Color, l.Len())
	RenderInto(dst, make([]Class, l.MovableCells()), l, in)
	return dst
}

// RenderInto renders one frame into dst using work as scratch space for the
// movable region. It returns the number of blocks written, which is zero
// when either buffer is too small.
func RenderInto(dst []Color, work []Class, l *Layout, in FrameInput) int {
	if l == nil || len(dst) < l.Len() || len(work) < l.MovableCells() {
		return 0
	}
	system := l.SystemCells()
	movable := l.MovableCells()
	state := work[:movable]
	copy(state, l.cells[system:])

	data := len(l.queue)
	optimized := scaledCount(in.Progress, data)
	for _, pos := range l.queue[:optimized] {
		state[pos-system] = ClassProcessed
	}

	compactFree(state, l.cells[system:], scaledCount(in.Progress, movable-data))

	for i := 0; i < system; i++ {
		dst[i] = ColorSystem
	}
	out := dst[system:l.Len()]
	for i, c := range state {
		out[i] = colorOf(c)
	}

	if in.Completed || !in.Running || data-optimized <= 0 {
		return l.Len()
	}
	animateActive(out, state, in.Phase)
	return l.Len()
}

// compactFree migrates up to moved free blocks from the front of state to the
// back. Free positions are taken from the initial layout in ascending order;
// a single back cursor walks down to find non-free blocks to trade places with.
func compactFree(state, initial []Class, moved int) {
	if moved <= 0 {
		return
	}
	boundary := len(state) - moved
	back := len(state) - 1
	swaps := 0
	for front, c := range initial {
		if c != ClassFree {
			continue
		}
		if swaps >= moved {
			return
		}
		if front >= boundary {
			continue
		}
		for back > front && state[back] == ClassFree {
			back--
		}
		if back <= front {
			return
		}
		state[front], state[back] = state[back], state[front]
		back--
		swaps++
	}
}

func animateActive(out []Color, state []Class, phase int) {
	if phase < 0 {
		phase = 0
	}
	var pending []int
	for i, c := range state {
		if c.IsData() {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return
	}
	active := pending[(phase/cycleLength)%len(pending)]
	switch phase % cycleLength {
	case cycleRead:
		out[active] = ColorReading
	case cycleMove:
		out[active] = ColorMoving
	}
}

func colorOf(c Class) Color {
	switch c {
	case ClassSystem:
		return ColorSystem
	case ClassProcessed:
		return ColorProcessed
	case ClassFragmented:
		return ColorFragmented
	case ClassContinuous:
		return ColorContinuous
	default:
		return ColorFree
	}
}

// scaledCount is floor(progress*n) clamped to [0, n]. NaN counts as zero.
func scaledCount(progress float64, n int) int {
	if n <= 0 || math.IsNaN(progress) || progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return n
	}
	v := int(math.Floor(progress * float64(n)))
	if v > n {
		return n
	}
	return v
}

// ScaledCounts reports how many data blocks are processed and how many free
// blocks have migrated for the given progress.
func (l *Layout) ScaledCounts(progress float64) (optimized, movedFree int) {
	data := len(l.queue)
	return scaledCount(progress, data), scaledCount(progress, l.MovableCells()-data)
}
