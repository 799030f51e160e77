package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"defrag-timer/internal/core"
	"defrag-timer/internal/sims/defrag"
)

var glyphs = map[defrag.Color]byte{
	defrag.ColorSystem:     '#',
	defrag.ColorFree:       '.',
	defrag.ColorContinuous: '=',
	defrag.ColorFragmented: '%',
	defrag.ColorProcessed:  '*',
	defrag.ColorReading:    'r',
	defrag.ColorMoving:     'm',
}

func newLayoutCmd(opts *options) *cobra.Command {
	var (
		progress float64
		phase    int
		running  bool
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print a generated disk layout",
		Long: `Print the block counts and an ASCII map of the disk at a given progress.

Legend: # system  . free  = continuous  % fragmented  * optimized  r reading  m moving`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			layout, err := defrag.Generate(cfg.Grid, cfg.Layout, core.SeededRNG(cfg.Seed))
			if err != nil {
				return err
			}
			in := defrag.FrameInput{
				Progress:  progress,
				Phase:     phase,
				Running:   running,
				Completed: progress >= 1,
			}
			loggerFromContext(cmd.Context()).Debug("rendering layout", "progress", progress, "phase", phase, "seed", cfg.Seed)
			return printLayout(cmd.OutOrStdout(), layout, defrag.Render(layout, in), progress)
		},
	}
	cmd.Flags().Float64Var(&progress, "progress", 0, "elapsed fraction of the countdown (0-1)")
	cmd.Flags().IntVar(&phase, "phase", 0, "animation phase")
	cmd.Flags().BoolVar(&running, "running", false, "render the active block animation")
	return cmd
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func printLayout(w io.Writer, layout *defrag.Layout, frame []defrag.Color, progress float64) error {
	counts := layout.Counts()
	optimized, moved := layout.ScaledCounts(progress)
	g := layout.Geometry()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%dx%d disk, %d blocks", g.Rows, g.Columns, counts.Total())))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "system %d  free %d  continuous %d  fragmented %d\n",
		counts.System, counts.Free, counts.Continuous, counts.Fragmented)
	fmt.Fprintf(&b, "optimized %d/%d  free moved %d/%d\n", optimized, counts.Data(), moved, counts.Free)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Columns; x++ {
			b.WriteByte(glyphs[frame[y*g.Columns+x]])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
