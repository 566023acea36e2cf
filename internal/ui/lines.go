package ui

import (
	"fmt"
	"strings"

	"blockfall/internal/board"
	"blockfall/internal/core"
)

type boardProvider interface {
	Board() *board.Board
}

// Lines builds the overlay text: the sim's parameters followed by a per-column
// block count when the sim exposes its board.
func Lines(sim core.Sim) []string {
	var lines []string
	lines = append(lines, sim.Name())
	if provider, ok := sim.(core.ParameterProvider); ok {
		for _, group := range provider.Parameters().Groups {
			for _, p := range group.Params {
				lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
			}
		}
	}
	if provider, ok := sim.(boardProvider); ok {
		b := provider.Board()
		counts := make([]string, b.Width())
		for x := range counts {
			counts[x] = fmt.Sprint(b.Occupied(x))
		}
		lines = append(lines, "Columns: "+strings.Join(counts, " "))
	}
	return lines
}
