//go:build !ebiten

package cli

import (
	"errors"
	"testing"

	"defrag-timer/internal/app"
)

func TestGUIHeadless(t *testing.T) {
	for _, args := range [][]string{nil, {"gui"}} {
		if _, err := execute(t, args...); !errors.Is(err, app.ErrNoGUI) {
			t.Fatalf("args %v: err=%v, want ErrNoGUI", args, err)
		}
	}
}
