package defrag

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestBindAndChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"--cols", "20", "--seconds=30", "--seed", "-2"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Grid.Columns != 20 || cfg.Timer.Seconds != 30 || cfg.Seed != -2 {
		t.Fatalf("flags not bound: %+v", cfg)
	}

	changed := ChangedFlags(fs)
	want := map[string]string{"columns": "20", "seconds": "30", "seed": "-2"}
	if len(changed) != len(want) {
		t.Fatalf("changed %v, want %v", changed, want)
	}
	for k, v := range want {
		if changed[k] != v {
			t.Fatalf("changed[%q] = %q, want %q", k, changed[k], v)
		}
	}

	layered, err := DefaultConfig().FromMap(changed)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if layered.Grid.Columns != 20 || layered.Timer.Seconds != 30 || layered.Seed != -2 {
		t.Fatalf("overrides not applied: %+v", layered)
	}
}

func TestEveryFlagHasAKey(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)
	for _, f := range configFlags {
		if fs.Lookup(f.flag) == nil {
			t.Fatalf("flag %q is not bound", f.flag)
		}
		if _, err := DefaultConfig().FromMap(map[string]string{f.key: "1"}); err != nil {
			t.Fatalf("key %q rejected: %v", f.key, err)
		}
	}
}
