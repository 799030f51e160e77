package defrag

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Target() != 5*time.Minute {
		t.Fatalf("default target %v, want 5m", cfg.Target())
	}
	if cfg.PhaseInterval() != 70*time.Millisecond {
		t.Fatalf("default phase interval %v, want 70ms", cfg.PhaseInterval())
	}
}

func TestFromMapOverrides(t *testing.T) {
	cfg, err := DefaultConfig().FromMap(map[string]string{
		"rows":               "8",
		"cols":               "20",
		"free_space_percent": " 30 ",
		"seconds":            "15",
		"seed":               "-4",
		"palette.free":       "#000000",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Grid.Rows != 8 || cfg.Grid.Columns != 20 || cfg.Layout.FreeSpacePercent != 30 {
		t.Fatalf("grid/layout not applied: %+v %+v", cfg.Grid, cfg.Layout)
	}
	if cfg.Timer.Seconds != 15 || cfg.Seed != -4 || cfg.Palette.Free != "#000000" {
		t.Fatalf("timer/seed/palette not applied: %+v seed=%d palette=%+v", cfg.Timer, cfg.Seed, cfg.Palette)
	}

	bad := []map[string]string{
		{"nope": "1"},
		{"rows": "eight"},
		{"seed": "x"},
		{"palette.sky": "#ffffff"},
	}
	for _, kv := range bad {
		if _, err := DefaultConfig().FromMap(kv); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("FromMap(%v) err=%v, want ErrInvalidConfiguration", kv, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero columns", mutate: func(c *Config) { c.Grid.Columns = 0 }},
		{name: "free above 100", mutate: func(c *Config) { c.Layout.FreeSpacePercent = 150 }},
		{name: "zero target", mutate: func(c *Config) { c.Timer.Minutes, c.Timer.Seconds = 0, 0 }},
		{name: "seconds overflow", mutate: func(c *Config) { c.Timer.Seconds = 75 }},
		{name: "zero phase interval", mutate: func(c *Config) { c.Timer.PhaseIntervalMS = 0 }},
		{name: "zero cell size", mutate: func(c *Config) { c.Display.CellSize = 0 }},
		{name: "negative gap", mutate: func(c *Config) { c.Display.Gap = -1 }},
		{name: "zero tps", mutate: func(c *Config) { c.Display.TPS = 0 }},
		{name: "bad palette", mutate: func(c *Config) { c.Palette.Moving = "yellow" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("Validate err=%v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defrag.toml")
	body := `seed = 9

[grid]
rows = 10
columns = 24

[timer]
minutes = 1
seconds = 30

[palette]
processed = "#112233"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Seed != 9 || cfg.Grid.Rows != 10 || cfg.Grid.Columns != 24 {
		t.Fatalf("decoded %+v", cfg)
	}
	if cfg.Grid.UnmovableRows != DefaultConfig().Grid.UnmovableRows {
		t.Fatal("keys missing from the file must keep their defaults")
	}
	if cfg.Target() != 90*time.Second {
		t.Fatalf("target %v, want 1m30s", cfg.Target())
	}
	palette, err := cfg.Palette.Apply(DefaultPalette())
	if err != nil {
		t.Fatal(err)
	}
	if palette[ColorProcessed] != (color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}) {
		t.Fatalf("processed colour %v", palette[ColorProcessed])
	}

	typo := filepath.Join(dir, "typo.toml")
	if err := os.WriteFile(typo, []byte("[grid]\nrowz = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(typo, DefaultConfig()); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("unknown key err=%v, want ErrInvalidConfiguration", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.toml"), DefaultConfig()); err == nil {
		t.Fatal("missing file must fail")
	}
}

func TestPaletteHex(t *testing.T) {
	p := DefaultPalette()
	if got := p.Hex(ColorFree); got != "#ececec" {
		t.Fatalf("free hex %q, want #ececec", got)
	}
	if len(p.RGBA()) != len(Colors()) {
		t.Fatalf("palette has %d entries for %d colours", len(p.RGBA()), len(Colors()))
	}
	for _, c := range Colors() {
		if p[c].A != 255 {
			t.Fatalf("%v is not opaque", c)
		}
	}
}

func TestPaletteApplyReportsFirstBadEntry(t *testing.T) {
	overrides := PaletteOverrides{Moving: "nope", System: "bad", Free: "#ffffff"}
	for i := 0; i < 20; i++ {
		_, err := overrides.Apply(DefaultPalette())
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("Apply err=%v, want ErrInvalidConfiguration", err)
		}
		if !strings.Contains(err.Error(), "palette system") {
			t.Fatalf("Apply err=%q, want the system entry reported first", err)
		}
	}
}
