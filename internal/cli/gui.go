package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"defrag-timer/internal/app"
)

func newGUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the defragmenter window (default)",
		Long: `Open the defragmenter window.

Keys: space start/pause, enter start, r reset, s new layout, l legend, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}
}

func runGUI(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())
	logger.Debug("starting window", "rows", cfg.Grid.Rows, "cols", cfg.Grid.Columns, "target", cfg.Target())
	err = app.Run(cmd.Context(), cfg, logger)
	if errors.Is(err, app.ErrNoGUI) {
		return fmt.Errorf("%w (try `defrag tui`)", err)
	}
	return err
}
