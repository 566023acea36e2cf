//go:build ebiten

package ui

import (
	"image/color"

	"blockfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws optional debugging text next to the board.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update toggles visibility on key 1.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw renders the overlay to the right of the board.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	size := o.sim.Size()
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	x := size.W*scale + 12
	y := lineHeight
	for _, line := range Lines(o.sim) {
		text.Draw(screen, line, face, x, y, color.White)
		y += lineHeight
	}
}
