//go:build ebiten

package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"defrag-timer/internal/chime"
	"defrag-timer/internal/render"
	"defrag-timer/internal/sims/defrag"
	"defrag-timer/internal/ui"
)

// Game adapts a defrag disk to the ebiten.Game interface.
type Game struct {
	ctx     context.Context
	disk    *defrag.Disk
	painter *render.GridPainter
	hud     *ui.HUD
	legend  *ui.Legend
	view    View
}

// New constructs a Game around disk.
func New(ctx context.Context, disk *defrag.Disk) *Game {
	cfg := disk.Config()
	view := NewView(cfg)
	palette := disk.Palette()
	return &Game{
		ctx:     ctx,
		disk:    disk,
		painter: render.NewGridPainter(view.Blocks, palette.RGBA(), background),
		hud:     ui.NewHUD(disk, view.PanelWidth, view.Height),
		legend:  ui.NewLegend(LegendEntries(palette)),
		view:    view,
	}
}

// Update handles keyboard input and advances the countdown.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.disk.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.disk.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.disk.ResetTimer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.disk.Reset(time.Now().UnixNano())
	}

	g.legend.Update()
	g.hud.Update(g.view.GridWidth)
	g.disk.Step()
	return nil
}

// Draw renders the disk, the legend and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.painter.Blit(screen, g.disk.Cells())
	g.legend.Draw(screen)
	g.hud.Draw(screen, g.view.GridWidth)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.Width, g.view.Height
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, cfg defrag.Config, logger *log.Logger) error {
	player := chime.NewPlayer(chime.DefaultNotes, 0.6, logger)
	disk, err := defrag.New(cfg, defrag.WithLogger(logger), defrag.WithCompletion(player.Play))
	if err != nil {
		return err
	}
	game := New(ctx, disk)

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(cfg.Display.TPS)
	ebiten.SetWindowSize(game.view.Width, game.view.Height)

	logger.Debug("opening window", "width", game.view.Width, "height", game.view.Height, "tps", cfg.Display.TPS)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return ctx.Err()
}
