package editor

import "hexview/pkg/viewdoc"

type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeLine
)

// Shape is a draw primitive in grid-local coordinates. For rectangles P0 is
// the top-left and P1 the bottom-right corner; for lines they are the
// endpoints.
type Shape struct {
	Kind ShapeKind
	P0   Point
	P1   Point
}

func (s Shape) Translate(d Point) Shape {
	return Shape{Kind: s.Kind, P0: s.P0.Add(d), P1: s.P1.Add(d)}
}

func rectShape(p0, p1 Point) Shape { return Shape{Kind: ShapeRect, P0: p0, P1: p1} }

// HighlightShapes decomposes [start, end] into row-aligned shapes.
//
// Filled: one rectangle when the range sits on a single row; otherwise the
// partial first row, a block for every full middle row (only when there is
// one), and the partial last row. Outlined traces the perimeter of the same
// region as line segments.
func (l Layout) HighlightShapes(start, end uint64, mode viewdoc.Mode) []Shape {
	mustColumns(l.Columns)
	if start > end {
		start, end = end, start
	}
	if mode == viewdoc.ModeOutlined {
		return l.outlineShapes(start, end)
	}

	tl := l.TopLeft(start)
	br := l.BottomRight(end)
	rs := Row(start, l.Columns)
	re := Row(end, l.Columns)
	if rs == re {
		return []Shape{rectShape(tl, br)}
	}

	right := l.RowEnd()
	y1 := float64(rs+1) * l.LineHeight
	y2 := float64(re) * l.LineHeight

	shapes := make([]Shape, 0, 3)
	shapes = append(shapes, rectShape(tl, Point{X: right, Y: y1}))
	if re-rs > 1 {
		shapes = append(shapes, rectShape(Point{X: 0, Y: y1}, Point{X: right, Y: y2}))
	}
	shapes = append(shapes, rectShape(Point{X: 0, Y: y2}, br))
	return shapes
}

func (l Layout) outlineShapes(start, end uint64) []Shape {
	tl := l.TopLeft(start)
	br := l.BottomRight(end)
	rs := Row(start, l.Columns)
	re := Row(end, l.Columns)

	out := make([]Shape, 0, 8)
	add := func(a, b Point) {
		if a == b {
			return
		}
		out = append(out, Shape{Kind: ShapeLine, P0: a, P1: b})
	}

	if rs == re {
		add(tl, Point{X: br.X, Y: tl.Y})
		add(Point{X: br.X, Y: tl.Y}, br)
		add(br, Point{X: tl.X, Y: br.Y})
		add(Point{X: tl.X, Y: br.Y}, tl)
		return out
	}

	x0, y0 := tl.X, tl.Y
	xe, y3 := br.X, br.Y
	right := l.RowEnd()
	y1 := float64(rs+1) * l.LineHeight
	y2 := float64(re) * l.LineHeight

	add(Point{X: x0, Y: y0}, Point{X: right, Y: y0})
	add(Point{X: right, Y: y0}, Point{X: right, Y: y2})
	if re-rs > 1 {
		add(Point{X: xe, Y: y2}, Point{X: right, Y: y2})
		add(Point{X: 0, Y: y1}, Point{X: x0, Y: y1})
	} else {
		// First and last row share the y1 edge; only the parts covered by
		// exactly one of them belong to the outline.
		lo, hi := min(x0, xe), max(x0, xe)
		add(Point{X: hi, Y: y1}, Point{X: right, Y: y1})
		add(Point{X: 0, Y: y1}, Point{X: lo, Y: y1})
	}
	add(Point{X: xe, Y: y2}, Point{X: xe, Y: y3})
	add(Point{X: 0, Y: y3}, Point{X: xe, Y: y3})
	add(Point{X: 0, Y: y1}, Point{X: 0, Y: y3})
	add(Point{X: x0, Y: y0}, Point{X: x0, Y: y1})
	return out
}
