// Package term drives a sim inside a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"blockfall/internal/core"
	"blockfall/internal/render"
)

// CellWidth is the number of terminal columns per board cell.
const CellWidth = 2

type ticker interface {
	Ticks() int
}

// View draws a sim's display buffer onto a tcell screen.
type View struct {
	screen tcell.Screen
	sim    core.Sim
	styles []tcell.Style
}

// NewView prepares a view. The screen must already be initialised.
func NewView(screen tcell.Screen, sim core.Sim) *View {
	palette := render.Palette()
	styles := make([]tcell.Style, len(palette))
	for i, c := range palette {
		bg := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
		styles[i] = tcell.StyleDefault.Background(bg).Foreground(tcell.ColorWhite)
	}
	return &View{screen: screen, sim: sim, styles: styles}
}

// Style returns the style used for display value v.
func (v *View) Style(value uint8) tcell.Style {
	idx := int(value)
	if idx >= len(v.styles) {
		idx = len(v.styles) - 1
	}
	return v.styles[idx]
}

// Draw paints the board and a status line beneath it.
func (v *View) Draw() {
	v.screen.Clear()
	size := v.sim.Size()
	cells := v.sim.Cells()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			style := v.Style(cells[y*size.W+x])
			for dx := 0; dx < CellWidth; dx++ {
				v.screen.SetContent(x*CellWidth+dx, y, ' ', nil, style)
			}
		}
	}
	v.drawText(0, size.H+1, v.status())
	v.screen.Show()
}

func (v *View) status() string {
	if t, ok := v.sim.(ticker); ok {
		return fmt.Sprintf("%s tick %d  esc/q quit", v.sim.Name(), t.Ticks())
	}
	return v.sim.Name() + "  esc/q quit"
}

func (v *View) drawText(x, y int, s string) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

// Run ticks the sim once per frame at tps and redraws until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, screen tcell.Screen, sim core.Sim, tps int, log *slog.Logger) error {
	view := NewView(screen, sim)
	pacer := core.NewFixedStep(tps)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	frames := time.NewTicker(pacer.Interval())
	defer frames.Stop()

	view.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					log.Info("quit requested")
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-frames.C:
			if !pacer.ShouldStep() {
				continue
			}
			sim.Step()
			view.Draw()
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
