package editor

import "math"

type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func Row(addr uint64, columns int) uint64 {
	mustColumns(columns)
	return addr / uint64(columns)
}

func Col(addr uint64, columns int) int {
	mustColumns(columns)
	return int(addr % uint64(columns))
}

// Coordinates below are local to the hex grid: (0,0) is the top-left corner
// of the first cell of row 0.

// MidGroupSpacingAt is the extra horizontal offset accumulated before col.
func (l Layout) MidGroupSpacingAt(col int) float64 {
	if l.MidGroupSize <= 0 {
		return 0
	}
	return float64(col/l.MidGroupSize) * l.MidGroupSpacing
}

func (l Layout) cellX(col int) float64 {
	return float64(col)*l.CellWidth + l.MidGroupSpacingAt(col)
}

func (l Layout) TopLeft(addr uint64) Point {
	row := Row(addr, l.Columns)
	col := Col(addr, l.Columns)
	return Point{X: l.cellX(col), Y: float64(row) * l.LineHeight}
}

func (l Layout) BottomRight(addr uint64) Point {
	tl := l.TopLeft(addr)
	return Point{X: tl.X + 2*l.GlyphWidth, Y: tl.Y + l.LineHeight}
}

// cellRight is the right edge of a highlighted cell. A highlight that
// continues into the next cell covers the whole cell, plus the group gap when
// the next column opens a new group, so that it meets the next cell exactly.
func (l Layout) cellRight(col int, continues bool) float64 {
	x := l.cellX(col)
	if !continues {
		return x + 2*l.GlyphWidth
	}
	w := l.CellWidth
	if l.MidGroupSize > 0 && col+1 < l.Columns && (col+1)%l.MidGroupSize == 0 {
		w += l.MidGroupSpacing
	}
	return x + w
}

// RowEnd is the right edge of a highlight running to the end of a row.
func (l Layout) RowEnd() float64 {
	return l.cellRight(l.Columns-1, true)
}

// AddressAt maps a grid-local point to the byte under it.
func (l Layout) AddressAt(p Point, size uint64) (uint64, bool) {
	if l.Columns < 1 || l.LineHeight <= 0 || p.X < 0 || p.Y < 0 {
		return 0, false
	}
	row := uint64(math.Floor(p.Y / l.LineHeight))
	for col := 0; col < l.Columns; col++ {
		if p.X < l.cellRight(col, true) {
			addr := row*uint64(l.Columns) + uint64(col)
			if addr >= size {
				return 0, false
			}
			return addr, true
		}
	}
	return 0, false
}

// AsciiAddressAt maps a point relative to the ASCII block's top-left corner.
func (l Layout) AsciiAddressAt(p Point, size uint64) (uint64, bool) {
	if !l.ShowAscii || l.Columns < 1 || l.GlyphWidth <= 0 || l.LineHeight <= 0 || p.X < 0 || p.Y < 0 {
		return 0, false
	}
	col := int(p.X / l.GlyphWidth)
	if col >= l.Columns {
		return 0, false
	}
	row := uint64(math.Floor(p.Y / l.LineHeight))
	addr := row*uint64(l.Columns) + uint64(col)
	if addr >= size {
		return 0, false
	}
	return addr, true
}
