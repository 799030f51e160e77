package tui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"defrag-timer/internal/sims/defrag"
)

// ErrNotTerminal is returned when stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("tui: stdout is not a terminal")

// Run drives a disk built from cfg in the terminal until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, cfg defrag.Config, logger *log.Logger) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	disk, err := defrag.New(cfg, defrag.WithLogger(logger))
	if err != nil {
		return err
	}
	return run(ctx, New(disk, cfg.Display.TPS, os.Stdout), nil, nil)
}

func run(ctx context.Context, m *Model, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	} else {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
