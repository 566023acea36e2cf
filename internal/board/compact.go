package board

// Compact settles every column so blocks rest on the bottom row in their
// original order and empty cells collect at the top.
func (b *Board) Compact() {
	for x := 0; x < b.w; x++ {
		b.CompactColumn(x)
	}
}

// CompactColumn settles a single column in place.
func (b *Board) CompactColumn(x int) {
	compactCells(b.column(x))
}

func compactCells(col []Cell) {
	wp := len(col) - 1
	for y := len(col) - 1; y >= 0; y-- {
		if col[y].Empty() {
			continue
		}
		if y != wp {
			col[wp] = col[y]
		}
		wp--
	}
	for y := wp; y >= 0; y-- {
		col[y] = Cell{}
	}
}

// IsCompacted reports whether no column has an empty cell below a block.
func (b *Board) IsCompacted() bool {
	for x := 0; x < b.w; x++ {
		if !columnSettled(b.column(x)) {
			return false
		}
	}
	return true
}

func columnSettled(col []Cell) bool {
	seenBlock := false
	for _, c := range col {
		if c.Empty() {
			if seenBlock {
				return false
			}
			continue
		}
		seenBlock = true
	}
	return true
}
