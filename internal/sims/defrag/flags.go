package defrag

import "github.com/spf13/pflag"

// configFlags maps command-line flag names to FromMap keys.
var configFlags = []struct{ flag, key string }{
	{"rows", "rows"},
	{"cols", "columns"},
	{"unmovable-rows", "unmovable_rows"},
	{"free", "free_space_percent"},
	{"fragmented", "fragmented_file_percent"},
	{"minutes", "minutes"},
	{"seconds", "seconds"},
	{"seed", "seed"},
	{"tps", "tps"},
	{"cell", "cell_size"},
	{"gap", "gap"},
}

// Bind attaches the configuration to fs, using c's values as defaults.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Grid.Rows, "rows", c.Grid.Rows, "grid rows")
	fs.IntVar(&c.Grid.Columns, "cols", c.Grid.Columns, "grid columns")
	fs.IntVar(&c.Grid.UnmovableRows, "unmovable-rows", c.Grid.UnmovableRows, "leading rows of system blocks")
	fs.IntVar(&c.Layout.FreeSpacePercent, "free", c.Layout.FreeSpacePercent, "free space percentage of the movable region")
	fs.IntVar(&c.Layout.FragmentedFilePercent, "fragmented", c.Layout.FragmentedFilePercent, "fragmented percentage of data blocks")
	fs.IntVar(&c.Timer.Minutes, "minutes", c.Timer.Minutes, "countdown minutes")
	fs.IntVar(&c.Timer.Seconds, "seconds", c.Timer.Seconds, "countdown seconds (0-59)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "layout seed (0 draws a fresh layout each reset)")
	fs.IntVar(&c.Display.TPS, "tps", c.Display.TPS, "frames per second")
	fs.IntVar(&c.Display.CellSize, "cell", c.Display.CellSize, "block size in pixels")
	fs.IntVar(&c.Display.Gap, "gap", c.Display.Gap, "gap between blocks in pixels")
}

// ChangedFlags returns the bound flags set on the command line as FromMap
// overrides, so they can be layered over a config file.
func ChangedFlags(fs *pflag.FlagSet) map[string]string {
	out := map[string]string{}
	for _, f := range configFlags {
		if flag := fs.Lookup(f.flag); flag != nil && flag.Changed {
			out[f.key] = flag.Value.String()
		}
	}
	return out
}
