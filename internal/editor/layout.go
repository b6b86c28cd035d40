package editor

import (
	"math"
	"math/bits"
)

const (
	MinColumns = 4
	MaxColumns = 32

	cellWidthFactor   = 2.5
	midGroupFactor    = 0.25
	addrColumnPadding = 2
)

// FontMetrics is what the layout needs from the active monospace face.
type FontMetrics struct {
	GlyphWidth float64
	LineHeight float64
}

// Layout is the pixel geometry of one hex pane. Offsets are relative to the
// left edge of the address column. It is a pure function of its inputs; see
// ComputeLayout.
type Layout struct {
	Columns      int
	MidGroupSize int
	AddrDigits   int
	ShowAscii    bool

	GlyphWidth      float64
	LineHeight      float64
	CellWidth       float64
	MidGroupSpacing float64

	HexStart   float64
	HexEnd     float64
	AsciiStart float64
	AsciiEnd   float64
	Width      float64
}

func ComputeLayout(m FontMetrics, columns, midGroupSize, addrDigits int, showAscii bool) Layout {
	mustColumns(columns)
	if midGroupSize < 0 {
		midGroupSize = 0
	}
	if addrDigits < 0 {
		addrDigits = 0
	}

	l := Layout{
		Columns:      columns,
		MidGroupSize: midGroupSize,
		AddrDigits:   addrDigits,
		ShowAscii:    showAscii,
		GlyphWidth:   m.GlyphWidth,
		LineHeight:   m.LineHeight,
	}
	l.CellWidth = math.Trunc(m.GlyphWidth * cellWidthFactor)
	l.MidGroupSpacing = math.Trunc(l.CellWidth * midGroupFactor)

	l.HexStart = float64(addrDigits+addrColumnPadding) * m.GlyphWidth
	l.HexEnd = l.HexStart + l.CellWidth*float64(columns)
	if midGroupSize > 0 {
		groups := (columns + midGroupSize - 1) / midGroupSize
		l.HexEnd += float64(groups) * l.MidGroupSpacing
	}
	l.AsciiStart = l.HexEnd
	l.AsciiEnd = l.HexEnd
	if showAscii {
		l.AsciiStart = l.HexEnd + m.GlyphWidth
		l.AsciiEnd = l.AsciiStart + float64(columns)*m.GlyphWidth
	}
	l.Width = l.AsciiEnd + m.GlyphWidth
	return l
}

// AddrDigitsFor returns how many hex digits the largest displayed address
// needs. An empty buffer, or one whose largest address is 0, needs none.
func AddrDigitsFor(base, size uint64) int {
	if size == 0 {
		return 0
	}
	digits := 0
	for n := DisplayAddress(base, size-1); n > 0; n >>= 4 {
		digits++
	}
	return digits
}

// DisplayAddress is base+addr, saturated at math.MaxUint64.
func DisplayAddress(base, addr uint64) uint64 {
	sum, carry := bits.Add64(base, addr, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func mustColumns(columns int) {
	if columns < 1 {
		panic("editor: column count must be at least 1")
	}
}

func clampColumns(columns int) int {
	if columns < MinColumns {
		return MinColumns
	}
	if columns > MaxColumns {
		return MaxColumns
	}
	return columns
}
