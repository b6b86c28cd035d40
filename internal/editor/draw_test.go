package editor

import (
	"strings"
	"testing"

	"hexview/pkg/viewdoc"
)

type recordedText struct {
	p Point
	s string
	c viewdoc.Color
}

type recordingSink struct {
	rects []Shape
	lines []Shape
	texts []recordedText
	fills []viewdoc.Color
}

func (r *recordingSink) FilledRect(p0, p1 Point, c viewdoc.Color) {
	r.rects = append(r.rects, rectShape(p0, p1))
	r.fills = append(r.fills, c)
}

func (r *recordingSink) Line(p0, p1 Point, c viewdoc.Color, thickness float64) {
	r.lines = append(r.lines, Shape{Kind: ShapeLine, P0: p0, P1: p1})
}

func (r *recordingSink) Text(p Point, s string, c viewdoc.Color) {
	r.texts = append(r.texts, recordedText{p: p, s: s, c: c})
}

func TestDrawEmitsRows(t *testing.T) {
	s := loadedState(t, 40)
	var sink recordingSink
	s.Draw(&sink, Point{}, 0, 10)

	// 3 rows: address + hex cells + ascii run per row.
	want := 3 + 40 + 3
	if len(sink.texts) != want {
		t.Fatalf("text calls: got %d want %d", len(sink.texts), want)
	}
	if sink.texts[0].s != "00:" {
		t.Fatalf("first address %q", sink.texts[0].s)
	}
	if len(sink.lines) != 1 {
		t.Fatalf("expected the ascii separator line, got %d lines", len(sink.lines))
	}
	last := sink.texts[len(sink.texts)-1]
	if len(last.s) != 8 {
		t.Fatalf("last ascii run should cover the partial row, got %q", last.s)
	}
}

func TestDrawGreysOutZeroes(t *testing.T) {
	s := loadedState(t, 16)
	pal := DefaultPalette()
	var sink recordingSink
	s.Draw(&sink, Point{}, 0, 1)
	if sink.texts[1].s != "00" || sink.texts[1].c != pal.Zero {
		t.Fatalf("zero byte drawn as %+v", sink.texts[1])
	}
	if sink.texts[2].c != pal.Hex {
		t.Fatalf("non-zero byte drawn as %+v", sink.texts[2])
	}

	s.SetGreyOutZeroes(false)
	sink = recordingSink{}
	s.Draw(&sink, Point{}, 0, 1)
	if sink.texts[1].c != pal.Hex {
		t.Fatal("grey out disabled but zero byte still dimmed")
	}
}

func TestDrawAsciiReplacesNonPrintable(t *testing.T) {
	s := NewState(nil)
	s.Load([]byte("AB\x00\x7fcd"), 0)
	s.Relayout(testMetrics)
	var sink recordingSink
	s.Draw(&sink, Point{}, 0, 1)
	last := sink.texts[len(sink.texts)-1]
	if last.s != "AB..cd" {
		t.Fatalf("ascii run %q", last.s)
	}
}

func TestDrawHighlightsAndSelectionOrder(t *testing.T) {
	s := loadedState(t, 64)
	s.AddView(10, 40, "v", teal, viewdoc.ModeFilled)
	s.PointerDown(0)
	s.PointerMove(1)

	var sink recordingSink
	origin := Point{X: 5, Y: 7}
	s.Draw(&sink, origin, 0, 4)
	if len(sink.rects) != 4 {
		t.Fatalf("expected 3 view rects and 1 selection rect, got %d", len(sink.rects))
	}
	if sink.fills[3] != DefaultPalette().Selection {
		t.Fatal("selection should be drawn last")
	}
	l := s.Layout()
	if sink.rects[0].P0 != (Point{X: origin.X + l.HexStart + 205, Y: origin.Y}) {
		t.Fatalf("first rect not translated to the pane: %+v", sink.rects[0])
	}
}

func TestDrawClipsToVisibleRows(t *testing.T) {
	s := loadedState(t, 64)
	s.AddView(10, 40, "v", teal, viewdoc.ModeFilled)

	var sink recordingSink
	s.Draw(&sink, Point{}, 1, 1)
	if len(sink.rects) != 1 {
		t.Fatalf("only the middle block is visible, got %d rects", len(sink.rects))
	}
	r := sink.rects[0]
	if r.P0.Y != 0 || r.P1.Y != 16 {
		t.Fatalf("clipped rect %+v", r)
	}
	for _, txt := range sink.texts {
		if strings.HasSuffix(txt.s, ":") && txt.s != "10:" {
			t.Fatalf("unexpected address row %q", txt.s)
		}
	}
}

func TestDrawSkipsOffscreenViews(t *testing.T) {
	s := loadedState(t, 64)
	s.AddView(48, 63, "tail", teal, viewdoc.ModeFilled)
	var sink recordingSink
	s.Draw(&sink, Point{}, 0, 2)
	if len(sink.rects) != 0 {
		t.Fatalf("offscreen view drew %d rects", len(sink.rects))
	}
}

func TestDrawWithoutLayoutIsNoop(t *testing.T) {
	s := NewState(nil)
	s.Load([]byte{1, 2, 3}, 0)
	var sink recordingSink
	s.Draw(&sink, Point{}, 0, 5)
	if len(sink.texts) != 0 {
		t.Fatal("draw before relayout should not emit anything")
	}
}

func TestClipRowsDropsLinesTouchingBandEdge(t *testing.T) {
	edge := Shape{Kind: ShapeLine, P0: Point{X: 5, Y: -16}, P1: Point{X: 5, Y: 0}}
	if sh, ok := clipRows(edge, 0, 32); ok {
		t.Fatalf("vertical line ending at the top edge kept as %+v", sh)
	}
	below := Shape{Kind: ShapeLine, P0: Point{X: 5, Y: 32}, P1: Point{X: 5, Y: 48}}
	if sh, ok := clipRows(below, 0, 32); ok {
		t.Fatalf("vertical line starting at the bottom edge kept as %+v", sh)
	}
	horizontal := Shape{Kind: ShapeLine, P0: Point{X: 0, Y: 0}, P1: Point{X: 40, Y: 0}}
	if _, ok := clipRows(horizontal, 0, 32); !ok {
		t.Fatal("horizontal line on the top edge should be kept")
	}
	crossing := Shape{Kind: ShapeLine, P0: Point{X: 5, Y: -16}, P1: Point{X: 5, Y: 16}}
	sh, ok := clipRows(crossing, 0, 32)
	if !ok || sh.P0.Y != 0 || sh.P1.Y != 16 {
		t.Fatalf("crossing line clipped to %+v, %v", sh, ok)
	}
}
