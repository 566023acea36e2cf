package render

import (
	"image/color"

	"blockfall/internal/board"
	"blockfall/internal/sims/blockfall"
)

// Background is the colour behind empty cells.
var Background = color.RGBA{A: 255}

var blockColors = map[board.Color]color.RGBA{
	board.Blue:  {B: 255, A: 255},
	board.Green: {G: 255, A: 255},
	board.Red:   {R: 255, A: 255},
}

// ColorOf returns the solid fill for a block colour.
func ColorOf(c board.Color) color.RGBA {
	if rgba, ok := blockColors[c]; ok {
		return rgba
	}
	return Background
}

// Palette maps blockfall display values to pixels. Index 0 is the background.
func Palette() []color.RGBA {
	palette := make([]color.RGBA, blockfall.CellRed+1)
	palette[blockfall.CellEmpty] = Background
	for _, c := range board.AllColors {
		palette[blockfall.EncodeCell(board.Of(c))] = ColorOf(c)
	}
	return palette
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
