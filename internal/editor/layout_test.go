package editor

import (
	"math"
	"testing"
)

var testMetrics = FontMetrics{GlyphWidth: 8, LineHeight: 16}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(testMetrics, 16, 8, 2, true)
	if l.CellWidth != 20 {
		t.Fatalf("cell width: got %v want 20", l.CellWidth)
	}
	if l.MidGroupSpacing != 5 {
		t.Fatalf("mid group spacing: got %v want 5", l.MidGroupSpacing)
	}
	if l.HexStart != 32 {
		t.Fatalf("hex start: got %v want 32", l.HexStart)
	}
	if l.HexEnd != 362 {
		t.Fatalf("hex end: got %v want 362", l.HexEnd)
	}
	if l.AsciiStart != 370 || l.AsciiEnd != 498 {
		t.Fatalf("ascii block: got %v..%v want 370..498", l.AsciiStart, l.AsciiEnd)
	}
	if l.Width != 506 {
		t.Fatalf("width: got %v want 506", l.Width)
	}
}

func TestComputeLayoutTruncatesFractionalWidths(t *testing.T) {
	l := ComputeLayout(FontMetrics{GlyphWidth: 7, LineHeight: 14}, 16, 8, 4, true)
	if l.CellWidth != 17 {
		t.Fatalf("cell width: got %v want 17", l.CellWidth)
	}
	if l.MidGroupSpacing != 4 {
		t.Fatalf("mid group spacing: got %v want 4", l.MidGroupSpacing)
	}
}

func TestComputeLayoutWithoutAscii(t *testing.T) {
	l := ComputeLayout(testMetrics, 16, 8, 2, false)
	if l.AsciiStart != l.HexEnd || l.AsciiEnd != l.HexEnd {
		t.Fatalf("ascii block should collapse onto hex end, got %v..%v", l.AsciiStart, l.AsciiEnd)
	}
	if l.Width != l.HexEnd+testMetrics.GlyphWidth {
		t.Fatalf("unexpected width %v", l.Width)
	}
}

func TestComputeLayoutWithoutMidGroups(t *testing.T) {
	l := ComputeLayout(testMetrics, 16, 0, 2, true)
	if l.HexEnd != 32+320 {
		t.Fatalf("hex end: got %v want 352", l.HexEnd)
	}
	if got := l.MidGroupSpacingAt(15); got != 0 {
		t.Fatalf("expected no group spacing, got %v", got)
	}
}

func TestComputeLayoutIsIdempotent(t *testing.T) {
	a := ComputeLayout(testMetrics, 12, 4, 6, true)
	b := ComputeLayout(testMetrics, 12, 4, 6, true)
	if a != b {
		t.Fatalf("layout differs between identical calls:\n%+v\n%+v", a, b)
	}
}

func TestComputeLayoutPanicsOnZeroColumns(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero columns")
		}
	}()
	ComputeLayout(testMetrics, 0, 8, 2, true)
}

func TestAddrDigitsFor(t *testing.T) {
	cases := []struct {
		base, size uint64
		want       int
	}{
		{0, 0, 0},
		{0, 1, 0},
		{0, 2, 1},
		{0, 16, 1},
		{0, 17, 2},
		{0, 64, 2},
		{0x1000, 16, 4},
		{0, 1 << 32, 8},
		{math.MaxUint64 - 3, 16, 16},
		{math.MaxUint64, 2, 16},
	}
	for _, tc := range cases {
		if got := AddrDigitsFor(tc.base, tc.size); got != tc.want {
			t.Fatalf("AddrDigitsFor(%#x, %d): got %d want %d", tc.base, tc.size, got, tc.want)
		}
	}
}

func TestDisplayAddressSaturates(t *testing.T) {
	if got := DisplayAddress(0x1000, 0x20); got != 0x1020 {
		t.Fatalf("got %#x", got)
	}
	if got := DisplayAddress(math.MaxUint64-3, 15); got != math.MaxUint64 {
		t.Fatalf("expected saturation, got %#x", got)
	}
}

func TestClampColumns(t *testing.T) {
	for in, want := range map[int]int{-3: 4, 0: 4, 4: 4, 16: 16, 32: 32, 33: 32, 100: 32} {
		if got := clampColumns(in); got != want {
			t.Fatalf("clampColumns(%d): got %d want %d", in, got, want)
		}
	}
}
