package board

import (
	"fmt"
	"strings"
)

// ParseColumn reads a column written top to bottom, one rune per cell:
// '.' for empty, 'B', 'G' or 'R' for a block.
func ParseColumn(s string) ([]Cell, error) {
	cells := make([]Cell, 0, len(s))
	for i, r := range s {
		switch r {
		case '.':
			cells = append(cells, Cell{})
		case 'B', 'b':
			cells = append(cells, Of(Blue))
		case 'G', 'g':
			cells = append(cells, Of(Green))
		case 'R', 'r':
			cells = append(cells, Of(Red))
		default:
			return nil, fmt.Errorf("parse column %q: unexpected %q at %d", s, r, i)
		}
	}
	return cells, nil
}

// FormatColumn is the inverse of ParseColumn.
func FormatColumn(col []Cell) string {
	var sb strings.Builder
	sb.Grow(len(col))
	for _, c := range col {
		sb.WriteRune(c.Glyph())
	}
	return sb.String()
}

// Parse builds a board from rows written top to bottom, each row holding one
// rune per column in ParseColumn notation.
func Parse(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse board: no rows")
	}
	w := len(rows[0])
	cols := make([][]Cell, w)
	for x := range cols {
		cols[x] = make([]Cell, len(rows))
	}
	for y, row := range rows {
		cells, err := ParseColumn(row)
		if err != nil {
			return nil, fmt.Errorf("parse board row %d: %w", y, err)
		}
		if len(cells) != w {
			return nil, fmt.Errorf("parse board row %d: width %d, want %d", y, len(cells), w)
		}
		for x, c := range cells {
			cols[x][y] = c
		}
	}
	return FromColumns(cols)
}

// String renders the board row by row, top to bottom.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.w + 1) * b.h)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			sb.WriteRune(b.At(x, y).Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
