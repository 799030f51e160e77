// Package cli implements the defrag command-line interface.
//
// The root command opens the window; tui runs in the terminal and layout
// prints a generated disk. Every command resolves its configuration the
// same way: defaults, then the --config TOML file, then explicit flags,
// then --set overrides.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"defrag-timer/internal/sims/defrag"
)

var version = "dev"

// SetVersion sets the string printed by --version.
func SetVersion(v string) { version = v }

type options struct {
	configPath string
	verbose    bool
	sets       []string
	flags      defrag.Config
}

// resolve builds the effective configuration for a command.
func (o *options) resolve(cmd *cobra.Command) (defrag.Config, error) {
	cfg := defrag.DefaultConfig()
	if o.configPath != "" {
		loaded, err := defrag.LoadFile(o.configPath, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg, err := cfg.FromMap(defrag.ChangedFlags(cmd.Flags()))
	if err != nil {
		return cfg, err
	}
	sets, err := parseSets(o.sets)
	if err != nil {
		return cfg, err
	}
	if cfg, err = cfg.FromMap(sets); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func parseSets(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: --set %q: want key=value", defrag.ErrInvalidConfiguration, pair)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

// NewRootCommand builds the command tree writing to out and logging to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &options{flags: defrag.DefaultConfig()}

	root := &cobra.Command{
		Use:           "defrag",
		Short:         "A countdown timer that looks like a disk defragmenter",
		Long:          `defrag shows a countdown as a disk being defragmented: blocks are read, moved and optimized until the time is up.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	pf.StringArrayVar(&opts.sets, "set", nil, "override a config key (key=value, repeatable)")
	opts.flags.Bind(pf)

	root.AddCommand(newGUICmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newLayoutCmd(opts))
	return root
}

// Execute runs the CLI with ctx, which should be cancelled on interrupt.
func Execute(ctx context.Context, out, errOut io.Writer, args []string) error {
	if args == nil {
		args = []string{}
	}
	root := NewRootCommand(out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
