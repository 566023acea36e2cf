package blockfall

import (
	"blockfall/internal/board"
	"blockfall/internal/core"
	pkgcore "blockfall/pkg/core"
)

// Display values written to Cells.
const (
	CellEmpty uint8 = iota
	CellBlue
	CellGreen
	CellRed
)

// Initialize builds the starting board from cfg using rng.
func Initialize(cfg Config, rng board.Source) *board.Board {
	return board.Random(cfg.Width, cfg.Height, cfg.EmptyChance, rng)
}

// Tick advances b by one frame. It always compacts, even when b is already
// settled.
func Tick(b *board.Board) {
	b.Compact()
}

// Sim drives a falling-block board through the core.Sim contract.
type Sim struct {
	cfg     Config
	board   *board.Board
	display *core.ByteGrid
	ticks   int
}

// New returns a Sim with the provided dimensions using defaults.
func New(w, h int) *Sim {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Sim seeded from cfg.Seed.
func NewWithConfig(cfg Config) *Sim {
	s := &Sim{cfg: cfg}
	s.Reset(0)
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "blockfall" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.board.Width(), H: s.board.Height()} }

// Config returns the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// Board exposes the live board. Callers must treat it as read-only.
func (s *Sim) Board() *board.Board { return s.board }

// Ticks reports how many steps ran since the last Reset.
func (s *Sim) Ticks() int { return s.ticks }

// Reset draws a fresh board. A zero seed falls back to the configured seed.
func (s *Sim) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.board = Initialize(s.cfg, pkgcore.NewRNG(effective))
	s.display = core.NewByteGrid(s.board.Width(), s.board.Height())
	s.ticks = 0
}

// Step runs one tick.
func (s *Sim) Step() {
	Tick(s.board)
	s.ticks++
}

// Cells rebuilds and returns the row-major display buffer.
func (s *Sim) Cells() []uint8 {
	s.rebuildDisplay()
	return s.display.Cells()
}

func (s *Sim) rebuildDisplay() {
	for x := 0; x < s.board.Width(); x++ {
		for y := 0; y < s.board.Height(); y++ {
			s.display.Set(x, y, EncodeCell(s.board.At(x, y)))
		}
	}
}

// EncodeCell maps a cell to its display value.
func EncodeCell(c board.Cell) uint8 {
	blk, ok := c.Block()
	if !ok {
		return CellEmpty
	}
	return uint8(blk.Color()) + CellBlue
}

func init() {
	core.Register("blockfall", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
