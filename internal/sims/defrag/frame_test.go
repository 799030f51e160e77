package defrag

import (
	"math"
	"slices"
	"testing"

	"defrag-timer/internal/core"
)

func scenarioLayout(t *testing.T, seed int64) *Layout {
	t.Helper()
	g, p := scenarioGeometry()
	layout, err := Generate(g, p, core.NewRNG(seed))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return layout
}

func countColors(frame []Color) map[Color]int {
	out := map[Color]int{}
	for _, c := range frame {
		out[c]++
	}
	return out
}

func TestRenderZeroProgressMatchesLayout(t *testing.T) {
	layout := scenarioLayout(t, 3)
	for _, phase := range []int{0, 1, 2, 17, 1000} {
		frame := Render(layout, FrameInput{Progress: 0, Phase: phase})
		for i, c := range frame {
			if want := colorOf(layout.At(i)); c != want {
				t.Fatalf("phase %d cell %d = %v, want %v", phase, i, c, want)
			}
		}
	}
}

func TestRenderZeroProgressRunningHighlightsOneBlock(t *testing.T) {
	layout := scenarioLayout(t, 3)
	queue := layout.Queue()

	frame := Render(layout, FrameInput{Progress: 0, Phase: 0, Running: true})
	counts := countColors(frame)
	if counts[ColorProcessed] != 0 {
		t.Fatal("progress 0 must not process any block")
	}
	if counts[ColorFree] != 30 {
		t.Fatalf("free blocks %d, want 30", counts[ColorFree])
	}
	if frame[queue[0]] != ColorReading || counts[ColorReading] != 1 {
		t.Fatalf("phase 0 must read the first queued block, got %v (%d readers)", frame[queue[0]], counts[ColorReading])
	}
}

func TestRenderAnimationCycle(t *testing.T) {
	layout := scenarioLayout(t, 8)
	queue := layout.Queue()
	data := len(queue)

	tests := []struct {
		phase int
		pos   int
		want  Color
	}{
		{phase: 0, pos: queue[0], want: ColorReading},
		{phase: 1, pos: queue[0], want: ColorMoving},
		{phase: 2, pos: queue[0], want: colorOf(layout.At(queue[0]))},
		{phase: 3, pos: queue[1], want: ColorReading},
		{phase: 4, pos: queue[1], want: ColorMoving},
		{phase: 3 * data, pos: queue[0], want: ColorReading},
		{phase: 3*data + 7, pos: queue[2], want: ColorMoving},
	}
	for _, tt := range tests {
		frame := Render(layout, FrameInput{Phase: tt.phase, Running: true})
		if frame[tt.pos] != tt.want {
			t.Fatalf("phase %d cell %d = %v, want %v", tt.phase, tt.pos, frame[tt.pos], tt.want)
		}
		active := countColors(frame)[ColorReading] + countColors(frame)[ColorMoving]
		wantActive := 1
		if tt.phase%3 == 2 {
			wantActive = 0
		}
		if active != wantActive {
			t.Fatalf("phase %d has %d animated blocks, want %d", tt.phase, active, wantActive)
		}
	}
}

func TestRenderAnimationSuppressed(t *testing.T) {
	layout := scenarioLayout(t, 4)
	inputs := []FrameInput{
		{Progress: 0.3, Phase: 0, Running: false},
		{Progress: 0.3, Phase: 0, Running: true, Completed: true},
		{Progress: 1, Phase: 0, Running: true},
	}
	for _, in := range inputs {
		counts := countColors(Render(layout, in))
		if counts[ColorReading]+counts[ColorMoving] != 0 {
			t.Fatalf("input %+v must not animate", in)
		}
	}
}

func TestRenderCompleted(t *testing.T) {
	layout := scenarioLayout(t, 21)
	frame := Render(layout, FrameInput{Progress: 1, Phase: 4, Running: false, Completed: true})
	system := layout.SystemCells()
	data := layout.Counts().Data()
	for i, c := range frame {
		switch {
		case i < system:
			if c != ColorSystem {
				t.Fatalf("cell %d = %v, want system", i, c)
			}
		case i < system+data:
			if c != ColorProcessed {
				t.Fatalf("cell %d = %v, want processed at the front", i, c)
			}
		default:
			if c != ColorFree {
				t.Fatalf("cell %d = %v, want free at the back", i, c)
			}
		}
	}
}

func TestRenderHalfwayScenario(t *testing.T) {
	layout := scenarioLayout(t, 12)
	optimized, moved := layout.ScaledCounts(0.5)
	if optimized != 45 || moved != 15 {
		t.Fatalf("ScaledCounts(0.5) = %d, %d; want 45, 15", optimized, moved)
	}
	counts := countColors(Render(layout, FrameInput{Progress: 0.5, Phase: 9, Running: true}))
	if counts[ColorProcessed] != 45 {
		t.Fatalf("processed %d, want 45", counts[ColorProcessed])
	}
	if counts[ColorFree] != 30 {
		t.Fatalf("free %d, want 30; compaction must only swap", counts[ColorFree])
	}
	if counts[ColorSystem] != 40 {
		t.Fatalf("system %d, want 40", counts[ColorSystem])
	}
}

func TestRenderCompactionMovesFreeBack(t *testing.T) {
	layout := scenarioLayout(t, 12)
	system := layout.SystemCells()
	movable := layout.MovableCells()
	tail := func(frame []Color, n int) int {
		free := 0
		for _, c := range frame[system+movable-n:] {
			if c == ColorFree {
				free++
			}
		}
		return free
	}

	before := tail(Render(layout, FrameInput{Progress: 0}), 30)
	after := tail(Render(layout, FrameInput{Progress: 0.5}), 30)
	if after < before {
		t.Fatalf("free blocks in the tail dropped from %d to %d", before, after)
	}
	if full := tail(Render(layout, FrameInput{Progress: 1}), 30); full != 30 {
		t.Fatalf("full progress leaves %d of 30 free blocks in the tail", full)
	}
}

// handLayout builds a single-row layout with no system blocks, so frame
// indices equal movable indices.
func handLayout(cells ...Class) *Layout {
	l := &Layout{
		geometry: Geometry{Rows: 1, Columns: len(cells)},
		cells:    cells,
	}
	for i, c := range cells {
		switch c {
		case ClassFree:
			l.counts.Free++
		case ClassContinuous:
			l.counts.Continuous++
		case ClassFragmented:
			l.counts.Fragmented++
		}
		if c.IsData() {
			l.queue = append(l.queue, i)
		}
	}
	return l
}

func TestRenderCompactionSwapOrder(t *testing.T) {
	const (
		F = ClassFree
		C = ClassContinuous
		G = ClassFragmented
	)
	const (
		sF = ColorFree
		sC = ColorContinuous
		sG = ColorFragmented
		sP = ColorProcessed
	)
	layout := handLayout(F, C, F, G, C, F, G, F)

	tests := []struct {
		progress float64
		want     []Color
	}{
		{progress: 0, want: []Color{sF, sC, sF, sG, sC, sF, sG, sF}},
		// first free slot trades with the last non-free block
		{progress: 0.25, want: []Color{sG, sP, sF, sG, sC, sF, sF, sF}},
		// the back cursor keeps walking down past the free block at 5
		{progress: 0.5, want: []Color{sG, sP, sC, sP, sF, sF, sF, sF}},
		// a processed block moves forward; free slot 5 is already past the boundary
		{progress: 0.75, want: []Color{sG, sP, sP, sP, sF, sF, sF, sF}},
		{progress: 1, want: []Color{sP, sP, sP, sP, sF, sF, sF, sF}},
	}
	for _, tt := range tests {
		got := Render(layout, FrameInput{Progress: tt.progress})
		if !slices.Equal(got, tt.want) {
			t.Fatalf("progress %.2f = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestRenderCompactionSkipsTailFreeBlocks(t *testing.T) {
	const (
		F = ClassFree
		C = ClassContinuous
	)
	// The free blocks at 2 and 3 already sit past the boundary; only the
	// front one trades places with the processed block.
	layout := handLayout(F, C, F, F)
	got := Render(layout, FrameInput{Progress: 1})
	want := []Color{ColorProcessed, ColorFree, ColorFree, ColorFree}
	if !slices.Equal(got, want) {
		t.Fatalf("frame %v, want %v", got, want)
	}
}

func TestRenderIsPureAndIdempotent(t *testing.T) {
	layout := scenarioLayout(t, 6)
	cells := layout.Cells()
	queue := layout.Queue()
	in := FrameInput{Progress: 0.37, Phase: 58, Running: true}

	first := Render(layout, in)
	second := Render(layout, in)
	if !slices.Equal(first, second) {
		t.Fatal("identical inputs must render identical frames")
	}
	if !slices.Equal(cells, layout.Cells()) || !slices.Equal(queue, layout.Queue()) {
		t.Fatal("Render must not mutate the layout")
	}
}

func TestRenderMonotonicInProgress(t *testing.T) {
	layout := scenarioLayout(t, 31)
	lastOptimized, lastMoved, lastProcessed := -1, -1, -1
	for step := 0; step <= 100; step++ {
		progress := float64(step) / 100
		optimized, moved := layout.ScaledCounts(progress)
		if optimized < lastOptimized || moved < lastMoved {
			t.Fatalf("progress %.2f regressed: optimized %d->%d moved %d->%d", progress, lastOptimized, optimized, lastMoved, moved)
		}
		processed := countColors(Render(layout, FrameInput{Progress: progress, Phase: 5, Running: true}))[ColorProcessed]
		if processed != optimized {
			t.Fatalf("progress %.2f shows %d processed, want %d", progress, processed, optimized)
		}
		if processed < lastProcessed {
			t.Fatalf("progress %.2f processed dropped %d->%d", progress, lastProcessed, processed)
		}
		lastOptimized, lastMoved, lastProcessed = optimized, moved, processed
	}
}

func TestRenderWithoutData(t *testing.T) {
	layout, err := Generate(Geometry{Rows: 8, Columns: 20, UnmovableRows: 2}, Proportions{FreeSpacePercent: 100, FragmentedFilePercent: 40}, core.NewRNG(2))
	if err != nil {
		t.Fatal(err)
	}
	for _, progress := range []float64{0, 0.5, 1} {
		for phase := 0; phase < 6; phase++ {
			frame := Render(layout, FrameInput{Progress: progress, Phase: phase, Running: true})
			for i, c := range frame[layout.SystemCells():] {
				if c != ColorFree {
					t.Fatalf("progress %.1f phase %d movable cell %d = %v, want free", progress, phase, i, c)
				}
			}
		}
	}
}

func TestRenderWithoutFreeSpace(t *testing.T) {
	layout, err := Generate(Geometry{Rows: 4, Columns: 4, UnmovableRows: 1}, Proportions{FreeSpacePercent: 0, FragmentedFilePercent: 50}, core.NewRNG(2))
	if err != nil {
		t.Fatal(err)
	}
	counts := countColors(Render(layout, FrameInput{Progress: 0.5}))
	if counts[ColorFree] != 0 || counts[ColorProcessed] != 6 {
		t.Fatalf("counts %v, want no free and 6 processed", counts)
	}
}

func TestRenderClampsInputs(t *testing.T) {
	layout := scenarioLayout(t, 9)
	zero := Render(layout, FrameInput{Progress: 0})
	full := Render(layout, FrameInput{Progress: 1})

	if got := Render(layout, FrameInput{Progress: math.NaN()}); !slices.Equal(got, zero) {
		t.Fatal("NaN progress must render like zero progress")
	}
	if got := Render(layout, FrameInput{Progress: -3}); !slices.Equal(got, zero) {
		t.Fatal("negative progress must render like zero progress")
	}
	if got := Render(layout, FrameInput{Progress: 7}); !slices.Equal(got, full) {
		t.Fatal("progress above one must render like full progress")
	}
	negative := Render(layout, FrameInput{Phase: -5, Running: true})
	if negative[layout.Queue()[0]] != ColorReading {
		t.Fatal("negative phase must clamp to phase zero")
	}
}

func TestRenderIntoRejectsShortBuffers(t *testing.T) {
	layout := scenarioLayout(t, 1)
	if n := RenderInto(make([]Color, 10), make([]Class, layout.MovableCells()), layout, FrameInput{}); n != 0 {
		t.Fatalf("short destination wrote %d cells", n)
	}
	if n := RenderInto(make([]Color, layout.Len()), make([]Class, 3), layout, FrameInput{}); n != 0 {
		t.Fatalf("short scratch wrote %d cells", n)
	}
	if n := RenderInto(make([]Color, layout.Len()), make([]Class, layout.MovableCells()), layout, FrameInput{}); n != layout.Len() {
		t.Fatalf("full buffers wrote %d cells, want %d", n, layout.Len())
	}
	if Render(nil, FrameInput{}) != nil {
		t.Fatal("nil layout must render nothing")
	}
}
