//go:build !ebiten

package app

import (
	"context"

	"github.com/charmbracelet/log"

	"defrag-timer/internal/sims/defrag"
)

// Run reports ErrNoGUI; the window needs the ebiten build tag.
func Run(context.Context, defrag.Config, *log.Logger) error {
	return ErrNoGUI
}
