package editor

import (
	"fmt"

	"hexview/pkg/viewdoc"
)

// Sink receives the primitives of one frame in screen coordinates.
type Sink interface {
	FilledRect(p0, p1 Point, c viewdoc.Color)
	Line(p0, p1 Point, c viewdoc.Color, thickness float64)
	Text(p Point, s string, c viewdoc.Color)
}

type Palette struct {
	Address   viewdoc.Color
	Hex       viewdoc.Color
	Zero      viewdoc.Color
	Ascii     viewdoc.Color
	Separator viewdoc.Color
	Selection viewdoc.Color
	Selected  viewdoc.Color
}

func DefaultPalette() Palette {
	return Palette{
		Address:   viewdoc.RGBA8(140, 150, 170, 255),
		Hex:       viewdoc.RGBA8(230, 232, 236, 255),
		Zero:      viewdoc.RGBA8(110, 114, 124, 255),
		Ascii:     viewdoc.RGBA8(200, 204, 212, 255),
		Separator: viewdoc.RGBA8(80, 84, 96, 255),
		Selection: viewdoc.RGBA8(255, 0, 0, 128),
		Selected:  viewdoc.RGBA8(255, 220, 80, 255),
	}
}

const outlineThickness = 1

var hexByte = func() [256]string {
	var t [256]string
	for i := range t {
		t[i] = fmt.Sprintf("%02X", i)
	}
	return t
}()

// Draw renders rows [firstRow, firstRow+rowCount) with the pane's top-left at
// origin. Views are drawn in storage order and the live selection on top.
// Call Relayout first; Draw does nothing without a layout.
func (s *State) Draw(sink Sink, origin Point, firstRow, rowCount int) {
	s.DrawWithPalette(sink, DefaultPalette(), origin, firstRow, rowCount)
}

func (s *State) DrawWithPalette(sink Sink, pal Palette, origin Point, firstRow, rowCount int) {
	l := s.layout
	size := s.buf.Size()
	if l.Columns < 1 || size == 0 || rowCount <= 0 {
		return
	}
	total := s.RowCount()
	firstRow = max(firstRow, 0)
	if firstRow >= total {
		return
	}
	lastRow := min(firstRow+rowCount, total) - 1

	cols := uint64(l.Columns)
	visStart := uint64(firstRow) * cols
	visEnd := min(uint64(lastRow+1)*cols, size) - 1

	grid := Point{X: origin.X + l.HexStart, Y: origin.Y - float64(firstRow)*l.LineHeight}
	clipTop := float64(firstRow) * l.LineHeight
	clipBottom := float64(lastRow+1) * l.LineHeight

	for _, v := range s.views {
		if v.End < visStart || v.Start > visEnd {
			continue
		}
		s.drawRange(sink, grid, clipTop, clipBottom, v.Start, v.End, v.Mode, v.Color)
		if v.ID == s.selectedID {
			s.drawRange(sink, grid, clipTop, clipBottom, v.Start, v.End, viewdoc.ModeOutlined, pal.Selected)
		}
	}
	if start, end, ok := s.sel.Range(); ok && end >= visStart && start <= visEnd {
		s.drawRange(sink, grid, clipTop, clipBottom, start, end, viewdoc.ModeFilled, pal.Selection)
	}

	if l.ShowAscii {
		x := origin.X + l.AsciiStart - l.GlyphWidth/2
		y0 := origin.Y
		y1 := origin.Y + float64(lastRow-firstRow+1)*l.LineHeight
		sink.Line(Point{X: x, Y: y0}, Point{X: x, Y: y1}, pal.Separator, 1)
	}

	ascii := make([]byte, l.Columns)
	for row := firstRow; row <= lastRow; row++ {
		y := origin.Y + float64(row-firstRow)*l.LineHeight
		rowAddr := uint64(row) * cols
		sink.Text(Point{X: origin.X, Y: y}, s.FormatAddress(rowAddr)+":", pal.Address)

		n := 0
		for col := 0; col < l.Columns; col++ {
			addr := rowAddr + uint64(col)
			if addr >= size {
				break
			}
			b := s.ByteAt(addr)
			c := pal.Hex
			if b == 0 && s.opts.GreyOutZeroes {
				c = pal.Zero
			}
			sink.Text(Point{X: origin.X + l.HexStart + l.cellX(col), Y: y}, hexByte[b], c)
			ascii[col] = printable(b)
			n++
		}
		if l.ShowAscii && n > 0 {
			sink.Text(Point{X: origin.X + l.AsciiStart, Y: y}, string(ascii[:n]), pal.Ascii)
		}
	}
}

func (s *State) drawRange(sink Sink, grid Point, top, bottom float64, start, end uint64, mode viewdoc.Mode, c viewdoc.Color) {
	for _, sh := range s.layout.HighlightShapes(start, end, mode) {
		clipped, ok := clipRows(sh, top, bottom)
		if !ok {
			continue
		}
		clipped = clipped.Translate(grid)
		switch clipped.Kind {
		case ShapeRect:
			sink.FilledRect(clipped.P0, clipped.P1, c)
		case ShapeLine:
			sink.Line(clipped.P0, clipped.P1, c, outlineThickness)
		}
	}
}

// clipRows restricts a grid-local shape to the vertical band [top, bottom].
// Shapes only ever have horizontal or vertical edges.
func clipRows(sh Shape, top, bottom float64) (Shape, bool) {
	y0, y1 := min(sh.P0.Y, sh.P1.Y), max(sh.P0.Y, sh.P1.Y)
	if y1 < top || y0 > bottom {
		return sh, false
	}
	if sh.Kind == ShapeRect && (y1 == top || y0 == bottom) {
		return sh, false
	}
	clamp := func(y float64) float64 { return min(max(y, top), bottom) }
	sh.P0.Y = clamp(sh.P0.Y)
	sh.P1.Y = clamp(sh.P1.Y)
	// A vertical line touching the band only at an edge collapses to a point.
	if y0 != y1 && sh.P0.Y == sh.P1.Y {
		return sh, false
	}
	return sh, true
}

func printable(b byte) byte {
	if b >= 0x20 && b < 0x7f {
		return b
	}
	return '.'
}
