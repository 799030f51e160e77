// Package defrag simulates a disk defragmenter whose progress tracks a
// countdown: blocks are laid out once per reset and every frame is derived
// from the elapsed fraction of the target time.
package defrag

import (
	"time"

	"github.com/charmbracelet/log"

	"defrag-timer/internal/core"
	"defrag-timer/internal/countdown"
)

// Status summarises the countdown for frontends.
type Status struct {
	State     countdown.State
	Target    time.Duration
	Remaining time.Duration
	Progress  float64
	Optimized int
	Data      int
}

// Option customises a Disk.
type Option func(*Disk)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Disk) {
		if now != nil {
			d.now = now
		}
	}
}

// WithLogger routes layout and lifecycle messages to l.
func WithLogger(l *log.Logger) Option {
	return func(d *Disk) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithCompletion registers fn to run once each time the countdown completes.
func WithCompletion(fn func()) Option {
	return func(d *Disk) { d.onComplete = fn }
}

// Disk binds a block layout to a countdown timer.
type Disk struct {
	cfg     Config
	palette Palette
	seed    int64

	layout  *Layout
	timer   *countdown.Timer
	frame   []Color
	work    []Class
	display *core.ByteGrid

	now        func() time.Time
	logger     *log.Logger
	onComplete func()
}

// New returns a disk for cfg. The configuration is validated and the first
// layout generated before New returns.
func New(cfg Config, opts ...Option) (*Disk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.Palette.Apply(DefaultPalette())
	if err != nil {
		return nil, err
	}
	size := cfg.Grid.Size()
	d := &Disk{
		cfg:     cfg,
		palette: palette,
		seed:    cfg.Seed,
		timer:   countdown.New(cfg.Target()),
		frame:   make([]Color, size.Cells()),
		display: core.NewByteGrid(size.W, size.H),
		now:     time.Now,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.regenerate(); err != nil {
		return nil, err
	}
	d.Step()
	return d, nil
}

// Name returns the simulation identifier.
func (d *Disk) Name() string { return "defrag" }

// Size reports the grid dimensions.
func (d *Disk) Size() core.Size { return d.cfg.Grid.Size() }

// Cells exposes the last rendered frame as palette indices.
func (d *Disk) Cells() []uint8 { return d.display.Cells() }

// Grid exposes the last rendered frame with row access.
func (d *Disk) Grid() *core.ByteGrid { return d.display }

// Frame returns the colours of the last rendered frame.
func (d *Disk) Frame() []Color { return d.frame }

// Layout returns the current immutable layout.
func (d *Disk) Layout() *Layout { return d.layout }

// Config returns the active configuration.
func (d *Disk) Config() Config { return d.cfg }

// Seed returns the seed used by the last reset; zero means entropy.
func (d *Disk) Seed() int64 { return d.seed }

// Reset stops the countdown and lays the disk out again. A zero seed draws
// a fresh, non-reproducible layout.
func (d *Disk) Reset(seed int64) {
	d.seed = seed
	d.timer.Reset()
	if err := d.regenerate(); err != nil {
		// geometry was validated in New and only changes through setters
		// that validate too
		d.logger.Error("layout generation failed", "err", err)
	}
	d.Step()
}

// ResetTimer is Reset with the current seed.
func (d *Disk) ResetTimer() { d.Reset(d.seed) }

// Start runs the countdown.
func (d *Disk) Start() bool {
	if !d.timer.Start(d.now()) {
		return false
	}
	d.logger.Info("defragmentation started", "target", countdown.FormatClock(d.timer.Target()))
	return true
}

// Pause holds the countdown.
func (d *Disk) Pause() bool {
	now := d.now()
	if !d.timer.Pause(now) {
		return false
	}
	d.logger.Info("defragmentation paused", "remaining", countdown.FormatClock(d.timer.Remaining(now)))
	return true
}

// Toggle pauses a running countdown and starts an idle or paused one.
func (d *Disk) Toggle() bool {
	if d.timer.State() == countdown.Running {
		return d.Pause()
	}
	return d.Start()
}

// SetTarget changes the countdown target, which resets the timer and lays
// the disk out again.
func (d *Disk) SetTarget(target time.Duration) error {
	minutes, seconds := countdown.Split(target)
	if _, err := countdown.Target(minutes, seconds); err != nil {
		return err
	}
	d.cfg.Timer.Minutes, d.cfg.Timer.Seconds = minutes, seconds
	d.timer.SetTarget(d.cfg.Target())
	d.Reset(d.seed)
	return nil
}

// Status reports the countdown as of the disk's clock.
func (d *Disk) Status() Status {
	now := d.now()
	progress := d.timer.Progress(now)
	optimized, _ := d.layout.ScaledCounts(progress)
	return Status{
		State:     d.timer.State(),
		Target:    d.timer.Target(),
		Remaining: d.timer.Remaining(now),
		Progress:  progress,
		Optimized: optimized,
		Data:      d.layout.Counts().Data(),
	}
}

// Step advances the countdown to the current time and renders a frame.
func (d *Disk) Step() {
	now := d.now()
	if d.timer.Update(now) {
		d.logger.Info("defragmentation complete", "target", countdown.FormatClock(d.timer.Target()))
		if d.onComplete != nil {
			d.onComplete()
		}
	}
	state := d.timer.State()
	in := FrameInput{
		Progress:  d.timer.Progress(now),
		Phase:     d.timer.Phase(now, d.cfg.PhaseInterval()),
		Running:   state == countdown.Running,
		Completed: state == countdown.Completed,
	}
	RenderInto(d.frame, d.work, d.layout, in)
	cells := d.display.Cells()
	for i, c := range d.frame {
		cells[i] = uint8(c)
	}
}

func (d *Disk) regenerate() error {
	layout, err := Generate(d.cfg.Grid, d.cfg.Layout, core.SeededRNG(d.seed))
	if err != nil {
		return err
	}
	d.layout = layout
	if cap(d.work) < layout.MovableCells() {
		d.work = make([]Class, layout.MovableCells())
	}
	d.work = d.work[:layout.MovableCells()]
	counts := layout.Counts()
	d.logger.Debug("layout generated",
		"system", counts.System,
		"free", counts.Free,
		"continuous", counts.Continuous,
		"fragmented", counts.Fragmented,
		"seed", d.seed,
	)
	return nil
}
