package ui

import (
	"image/color"

	"hexview/internal/render"
)

// Layout is the window split: top bar, hex pane on the left, view list on
// the right and a status bar along the bottom. All values are pixels.
type Layout struct {
	TopH    int
	StatusH int
	StatusY int

	PaneX int
	PaneY int
	PaneW int
	PaneH int

	PanelX    int
	PanelY    int
	PanelW    int
	PanelH    int
	PanelRowH int
}

func ComputeLayout(w, h int, theme Theme, scale float32) Layout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) int { return int(float32(v) * scale) }

	topH := dp(theme.TopBarHeightDp)
	statusH := dp(theme.StatusHeightDp)
	margin := dp(theme.PaneMarginDp)
	panelW := dp(theme.PanelWidthDp)
	if panelW > w/2 {
		panelW = w / 2
	}

	bodyY := topH
	bodyH := max(h-topH-statusH, 0)

	return Layout{
		TopH:    topH,
		StatusH: statusH,
		StatusY: h - statusH,

		PaneX: margin,
		PaneY: bodyY + margin,
		PaneW: max(w-panelW-margin*2, 0),
		PaneH: max(bodyH-margin*2, 0),

		PanelX:    w - panelW,
		PanelY:    bodyY,
		PanelW:    panelW,
		PanelH:    bodyH,
		PanelRowH: max(dp(theme.PanelRowHeightDp), 1),
	}
}

// VisibleRows is how many hex rows of height lineHeight fit in the pane.
func (l Layout) VisibleRows(lineHeight float64) int {
	if lineHeight <= 0 {
		return 0
	}
	return int(float64(l.PaneH) / lineHeight)
}

func (l Layout) InPane(x, y int) bool {
	return x >= l.PaneX && x < l.PaneX+l.PaneW && y >= l.PaneY && y < l.PaneY+l.PaneH
}

// PanelRowAt maps a window position to a row of the view list. The first
// row is the panel header.
func (l Layout) PanelRowAt(x, y int) (int, bool) {
	if x < l.PanelX || x >= l.PanelX+l.PanelW || y < l.PanelY || y >= l.PanelY+l.PanelH {
		return 0, false
	}
	row := (y-l.PanelY)/l.PanelRowH - 1
	if row < 0 {
		return 0, false
	}
	return row, true
}

// PanelRowY is the top edge of view list row i.
func (l Layout) PanelRowY(i int) int {
	return l.PanelY + (i+1)*l.PanelRowH
}

// DrawShell paints the window chrome. selectedRow highlights a view list
// row; pass -1 for none.
func DrawShell(fb *render.FrameBuffer, theme Theme, scale float32, selectedRow int) Layout {
	layout := ComputeLayout(fb.W, fb.H, theme, scale)

	fb.Clear(theme.AppBackground)

	fb.FillRect(0, 0, fb.W, layout.TopH, theme.TopBar)
	accentH := max(int(2*scale), 1)
	fb.FillRect(0, layout.TopH-accentH, fb.W, accentH, theme.Accent)

	fb.FillRect(layout.PaneX, layout.PaneY, layout.PaneW, layout.PaneH, theme.Pane)
	fb.StrokeRect(layout.PaneX, layout.PaneY, layout.PaneW, layout.PaneH, 1, theme.Border)

	fb.FillRect(layout.PanelX, layout.PanelY, layout.PanelW, layout.PanelH, theme.Panel)
	fb.FillRect(layout.PanelX, layout.PanelY, 1, layout.PanelH, theme.Border)
	fb.FillRect(layout.PanelX, layout.PanelY+layout.PanelRowH-1, layout.PanelW, 1, theme.Border)
	if selectedRow >= 0 {
		y := layout.PanelRowY(selectedRow)
		if y+layout.PanelRowH <= layout.PanelY+layout.PanelH {
			fb.FillRect(layout.PanelX+1, y, layout.PanelW-1, layout.PanelRowH, theme.PanelRowSel)
		}
	}

	fb.FillRect(0, layout.StatusY, fb.W, layout.StatusH, theme.StatusBar)
	fb.FillRect(0, layout.StatusY, fb.W, 1, theme.Border)
	return layout
}

// Swatch draws a small color chip, used next to view names.
func Swatch(fb *render.FrameBuffer, x, y, size int, c color.RGBA, border color.RGBA) {
	fb.FillRect(x, y, size, size, c)
	fb.StrokeRect(x, y, size, size, 1, border)
}
