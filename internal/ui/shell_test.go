package ui

import (
	"testing"

	"hexview/internal/render"
)

func TestComputeLayoutSplitsWindow(t *testing.T) {
	theme := DefaultTheme()
	l := ComputeLayout(1200, 800, theme, 1)

	if l.PanelX != 1200-theme.PanelWidthDp || l.PanelW != theme.PanelWidthDp {
		t.Fatalf("panel at %d width %d", l.PanelX, l.PanelW)
	}
	if l.PaneX+l.PaneW > l.PanelX {
		t.Fatalf("pane overlaps panel: pane ends at %d, panel starts at %d", l.PaneX+l.PaneW, l.PanelX)
	}
	if l.StatusY != 800-theme.StatusHeightDp {
		t.Fatalf("status y %d", l.StatusY)
	}
	if l.PaneY+l.PaneH > l.StatusY {
		t.Fatal("pane overlaps status bar")
	}
}

func TestComputeLayoutScales(t *testing.T) {
	theme := DefaultTheme()
	l := ComputeLayout(2000, 1000, theme, 2)
	if l.TopH != theme.TopBarHeightDp*2 {
		t.Fatalf("top bar height %d", l.TopH)
	}
}

func TestComputeLayoutTinyWindow(t *testing.T) {
	l := ComputeLayout(40, 20, DefaultTheme(), 1)
	if l.PaneW < 0 || l.PaneH < 0 || l.PanelH < 0 {
		t.Fatalf("negative sizes: %+v", l)
	}
	if l.PanelW > 20 {
		t.Fatalf("panel wider than half the window: %d", l.PanelW)
	}
}

func TestPanelRowAt(t *testing.T) {
	l := ComputeLayout(1200, 800, DefaultTheme(), 1)
	if _, ok := l.PanelRowAt(l.PanelX+5, l.PanelY+2); ok {
		t.Fatal("header row should not map to a view")
	}
	row, ok := l.PanelRowAt(l.PanelX+5, l.PanelRowY(3)+1)
	if !ok || row != 3 {
		t.Fatalf("row=%d ok=%v", row, ok)
	}
	if _, ok := l.PanelRowAt(l.PanelX-1, l.PanelRowY(0)); ok {
		t.Fatal("left of the panel should miss")
	}
}

func TestVisibleRows(t *testing.T) {
	l := Layout{PaneH: 100}
	if got := l.VisibleRows(16); got != 6 {
		t.Fatalf("got %d", got)
	}
	if got := l.VisibleRows(0); got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestDrawShellPaintsChrome(t *testing.T) {
	theme := DefaultTheme()
	fb := render.NewFrameBuffer(800, 600)
	l := DrawShell(fb, theme, 1, 0)
	if fb.At(1, 1) != theme.TopBar {
		t.Fatalf("top bar color %+v", fb.At(1, 1))
	}
	if fb.At(l.PaneX+4, l.PaneY+4) != theme.Pane {
		t.Fatalf("pane color %+v", fb.At(l.PaneX+4, l.PaneY+4))
	}
	if fb.At(l.PanelX+10, l.PanelRowY(0)+2) != theme.PanelRowSel {
		t.Fatal("selected panel row not highlighted")
	}
	if !l.InPane(l.PaneX+1, l.PaneY+1) || l.InPane(l.PanelX+1, l.PanelY+1) {
		t.Fatal("InPane mismatch")
	}
}
