package board

// Color enumerates the block colours.
type Color uint8

const (
	Blue Color = iota
	Green
	Red
)

// AllColors lists every block colour in declaration order.
var AllColors = [...]Color{Blue, Green, Red}

func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// Glyph returns the single-letter notation used by ParseColumn and String.
func (c Color) Glyph() rune {
	switch c {
	case Blue:
		return 'B'
	case Green:
		return 'G'
	case Red:
		return 'R'
	default:
		return '?'
	}
}

// Block occupies a cell. Its colour is fixed at creation.
type Block struct {
	color Color
}

// NewBlock returns a block of the given colour.
func NewBlock(c Color) Block { return Block{color: c} }

// Color reports the block's colour.
func (b Block) Color() Color { return b.color }

// Cell is a single grid position. The zero value is empty.
type Cell struct {
	block    Block
	occupied bool
}

// Filled returns a cell holding b.
func Filled(b Block) Cell { return Cell{block: b, occupied: true} }

// Of is shorthand for Filled(NewBlock(c)).
func Of(c Color) Cell { return Filled(NewBlock(c)) }

// Empty reports whether the cell holds no block.
func (c Cell) Empty() bool { return !c.occupied }

// Block returns the occupant and whether there is one.
func (c Cell) Block() (Block, bool) { return c.block, c.occupied }

// Glyph returns '.' for an empty cell and the colour glyph otherwise.
func (c Cell) Glyph() rune {
	if !c.occupied {
		return '.'
	}
	return c.block.color.Glyph()
}
