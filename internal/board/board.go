package board

// Default board dimensions.
const (
	DefaultWidth  = 8
	DefaultHeight = 10
)

// Source is the randomness consumed by Random. *rand.Rand and *core.RNG
// both satisfy it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Board is a fixed-size grid of cells stored column by column. x selects the
// column, y the row within it; y=0 is the top.
type Board struct {
	w, h  int
	cells []Cell
}

// New allocates an empty board. Non-positive dimensions are clamped to 1.
func New(w, h int) *Board {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Board{w: w, h: h, cells: make([]Cell, w*h)}
}

// Random fills a new board cell by cell, column by column and top to bottom.
// A uniform draw at or above emptyChance places a block of a uniformly chosen
// colour; anything below leaves the cell empty.
func Random(w, h int, emptyChance float64, rng Source) *Board {
	b := New(w, h)
	if emptyChance < 0 {
		emptyChance = 0
	}
	if emptyChance > 1 {
		emptyChance = 1
	}
	for x := 0; x < b.w; x++ {
		col := b.column(x)
		for y := range col {
			if rng.Float64() >= emptyChance {
				col[y] = Of(AllColors[rng.IntN(len(AllColors))])
			}
		}
	}
	return b
}

// FromColumns builds a board from explicit columns. All columns must share
// the same non-zero length.
func FromColumns(cols [][]Cell) (*Board, error) {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, &InvariantError{Column: -1, Property: "dimensions", Detail: "board needs at least one cell"}
	}
	h := len(cols[0])
	b := New(len(cols), h)
	for x, col := range cols {
		if len(col) != h {
			return nil, &InvariantError{Column: x, Property: "cell count", Detail: "ragged column"}
		}
		copy(b.column(x), col)
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of cells per column.
func (b *Board) Height() int { return b.h }

// At returns the cell at (x, y).
func (b *Board) At(x, y int) Cell { return b.cells[x*b.h+y] }

// Set replaces the cell at (x, y).
func (b *Board) Set(x, y int, c Cell) { b.cells[x*b.h+y] = c }

// Column returns a copy of column x, top to bottom.
func (b *Board) Column(x int) []Cell {
	return append([]Cell(nil), b.column(x)...)
}

func (b *Board) column(x int) []Cell {
	start := x * b.h
	return b.cells[start : start+b.h : start+b.h]
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	return &Board{w: b.w, h: b.h, cells: append([]Cell(nil), b.cells...)}
}

// Equal reports whether both boards have the same dimensions and cells.
func (b *Board) Equal(o *Board) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Occupied counts the blocks in column x.
func (b *Board) Occupied(x int) int {
	n := 0
	for _, c := range b.column(x) {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// Colors lists the colours of the blocks in column x, top to bottom.
func (b *Board) Colors(x int) []Color {
	var out []Color
	for _, c := range b.column(x) {
		if blk, ok := c.Block(); ok {
			out = append(out, blk.Color())
		}
	}
	return out
}
