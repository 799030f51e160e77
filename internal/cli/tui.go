package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"defrag-timer/internal/tui"
)

func newTUICmd(opts *options) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the defragmenter in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI; logs go to a file or nowhere.
			logger := log.New(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				logger = newLogger(f, loggerFromContext(cmd.Context()).GetLevel())
			}
			return tui.Run(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
