package defrag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"defrag-timer/internal/countdown"
)

// TimerConfig sets the countdown target and animation cadence.
type TimerConfig struct {
	Minutes         int `toml:"minutes"`
	Seconds         int `toml:"seconds"`
	PhaseIntervalMS int `toml:"phase_interval_ms"`
}

// DisplayConfig controls how frontends draw the grid.
type DisplayConfig struct {
	CellSize int `toml:"cell_size"`
	Gap      int `toml:"gap"`
	TPS      int `toml:"tps"`
}

// Config controls the disk simulation and its presentation.
type Config struct {
	// Seed fixes the layout shuffle; zero draws fresh entropy on every reset.
	Seed int64 `toml:"seed"`

	Grid    Geometry         `toml:"grid"`
	Layout  Proportions      `toml:"layout"`
	Timer   TimerConfig      `toml:"timer"`
	Display DisplayConfig    `toml:"display"`
	Palette PaletteOverrides `toml:"palette"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Grid: Geometry{
			Rows:          12,
			Columns:       32,
			UnmovableRows: 2,
		},
		Layout: Proportions{
			FreeSpacePercent:      25,
			FragmentedFilePercent: 40,
		},
		Timer: TimerConfig{
			Minutes:         5,
			PhaseIntervalMS: int(countdown.PhaseInterval / time.Millisecond),
		},
		Display: DisplayConfig{
			CellSize: 18,
			Gap:      2,
			TPS:      60,
		},
	}
}

// Target returns the configured countdown duration.
func (c Config) Target() time.Duration {
	return time.Duration(c.Timer.Minutes)*time.Minute + time.Duration(c.Timer.Seconds)*time.Second
}

// PhaseInterval returns the elapsed time per animation phase.
func (c Config) PhaseInterval() time.Duration {
	return time.Duration(c.Timer.PhaseIntervalMS) * time.Millisecond
}

// Validate reports the first setting that cannot drive a disk.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Timer.Seconds < 0 || c.Timer.Seconds >= 60 {
		return fmt.Errorf("%w: timer seconds %d outside [0,59]", ErrInvalidConfiguration, c.Timer.Seconds)
	}
	if _, err := countdown.Target(c.Timer.Minutes, c.Timer.Seconds); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if c.Timer.PhaseIntervalMS <= 0 {
		return fmt.Errorf("%w: phase interval must be positive, got %dms", ErrInvalidConfiguration, c.Timer.PhaseIntervalMS)
	}
	if c.Display.CellSize <= 0 || c.Display.Gap < 0 {
		return fmt.Errorf("%w: cell size %d / gap %d", ErrInvalidConfiguration, c.Display.CellSize, c.Display.Gap)
	}
	if c.Display.TPS <= 0 {
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfiguration, c.Display.TPS)
	}
	if _, err := c.Palette.Apply(DefaultPalette()); err != nil {
		return err
	}
	return nil
}

// LoadFile decodes a TOML file over base. Keys the config does not know are
// rejected so typos do not pass silently.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfiguration, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// FromMap applies flag-style key/value overrides on top of c. Unknown keys
// and unparsable values are errors.
func (c Config) FromMap(kv map[string]string) (Config, error) {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := strings.TrimSpace(kv[key])
		if name, ok := strings.CutPrefix(key, "palette."); ok {
			if err := c.setPalette(name, value); err != nil {
				return c, err
			}
			continue
		}
		if key == "seed" {
			seed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return c, fmt.Errorf("%w: seed %q: %v", ErrInvalidConfiguration, value, err)
			}
			c.Seed = seed
			continue
		}
		field := c.intField(key)
		if field == nil {
			return c, fmt.Errorf("%w: unknown key %q", ErrInvalidConfiguration, key)
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return c, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidConfiguration, key, value)
		}
		*field = parsed
	}
	return c, nil
}

func (c *Config) intField(key string) *int {
	switch key {
	case "rows":
		return &c.Grid.Rows
	case "columns", "cols":
		return &c.Grid.Columns
	case "unmovable_rows":
		return &c.Grid.UnmovableRows
	case "free_space_percent":
		return &c.Layout.FreeSpacePercent
	case "fragmented_file_percent":
		return &c.Layout.FragmentedFilePercent
	case "minutes":
		return &c.Timer.Minutes
	case "seconds":
		return &c.Timer.Seconds
	case "phase_interval_ms":
		return &c.Timer.PhaseIntervalMS
	case "cell_size":
		return &c.Display.CellSize
	case "gap":
		return &c.Display.Gap
	case "tps":
		return &c.Display.TPS
	}
	return nil
}

func (c *Config) setPalette(name, hex string) error {
	p := &c.Palette
	switch name {
	case "system":
		p.System = hex
	case "free":
		p.Free = hex
	case "continuous":
		p.Continuous = hex
	case "fragmented":
		p.Fragmented = hex
	case "processed":
		p.Processed = hex
	case "reading":
		p.Reading = hex
	case "moving":
		p.Moving = hex
	default:
		return fmt.Errorf("%w: unknown palette entry %q", ErrInvalidConfiguration, name)
	}
	return nil
}
