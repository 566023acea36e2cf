//go:build ebiten

package app

import (
	"log/slog"

	"blockfall/internal/core"
	"blockfall/internal/render"
	"blockfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Original window size of the prototype.
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	log     *slog.Logger

	scale int
}

// New constructs a Game for the provided simulation. scale is the block size
// in pixels.
func New(sim core.Sim, scale int, log *slog.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H, render.Palette()),
		overlay: ui.NewOverlay(sim, scale),
		log:     log,
		scale:   scale,
	}
}

// Update advances the simulation by exactly one tick per frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.log.Info("quit requested")
		return ebiten.Termination
	}
	if g.overlay != nil {
		g.overlay.Update()
	}
	g.sim.Step()
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowSize(g.sim.Size(), g.scale)
}

// WindowSize returns the prototype's 640x480 window, grown when the board
// does not fit.
func WindowSize(size core.Size, scale int) (int, int) {
	return max(ScreenWidth, size.W*scale), max(ScreenHeight, size.H*scale)
}
