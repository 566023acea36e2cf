package render

import (
	"bufio"
	"io"

	"github.com/fatih/color"

	"blockfall/internal/board"
)

var ansiStyles = map[board.Color]*color.Color{
	board.Blue:  color.New(color.BgBlue, color.FgHiWhite, color.Bold),
	board.Green: color.New(color.BgGreen, color.FgBlack, color.Bold),
	board.Red:   color.New(color.BgRed, color.FgHiWhite, color.Bold),
}

// WriteANSI prints the board row by row, two terminal columns per cell.
// Blocks carry their glyph on a coloured background; empty cells print ". ".
// Colour is skipped when color.NoColor is set.
func WriteANSI(w io.Writer, b *board.Board) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cell := b.At(x, y)
			text := string(cell.Glyph()) + " "
			if blk, ok := cell.Block(); ok {
				text = ansiStyles[blk.Color()].Sprint(text)
			}
			if _, err := bw.WriteString(text); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
