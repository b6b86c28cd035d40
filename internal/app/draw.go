package app

import (
	"fmt"

	"hexview/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// drawHexText flushes the text runs queued by the editor's draw pass.
func (a *App) drawHexText(screen *ebiten.Image) {
	face := a.hexFace()
	ascent := face.Metrics().Ascent.Ceil()
	for _, r := range a.sink.Runs {
		text.Draw(screen, r.S, face, int(r.X), int(r.Y)+ascent, r.C)
	}
}

func (a *App) drawTopBar(screen *ebiten.Image) {
	face := a.uiFace(12)
	y := baseline(face, 0, a.layout.TopH)
	text.Draw(screen, a.statusName(), face, 12, y, a.theme.Text)
	label := a.state.RangeLabel()
	x := a.layout.PaneX + a.layout.PaneW - measureString(face, label)
	text.Draw(screen, label, face, x, y, a.theme.TextMuted)
}

func (a *App) drawPanelSwatches() {
	size := a.layout.PanelRowH / 2
	for i, v := range a.state.Views() {
		y := a.layout.PanelRowY(i)
		if y+a.layout.PanelRowH > a.layout.PanelY+a.layout.PanelH {
			return
		}
		ui.Swatch(a.frameBuffer, a.layout.PanelX+8, y+(a.layout.PanelRowH-size)/2, size, ui.ToRGBA(v.Color), a.theme.Border)
	}
}

// drawPanelText lists views as "ADDR : name" rows and shows the selected
// view's details at the bottom of the panel.
func (a *App) drawPanelText(screen *ebiten.Image) {
	l := a.layout
	face := a.uiFace(11)
	header := fmt.Sprintf("Views (%d)", a.state.ViewCount())
	text.Draw(screen, header, face, l.PanelX+8, baseline(face, l.PanelY, l.PanelRowH), a.theme.Text)

	views := a.state.Views()
	textX := l.PanelX + 8 + l.PanelRowH/2 + 8
	detailH := 4 * l.PanelRowH
	for i, v := range views {
		y := l.PanelRowY(i)
		if y+l.PanelRowH > l.PanelY+l.PanelH-detailH {
			text.Draw(screen, fmt.Sprintf("... %d more", len(views)-i), face, textX, baseline(face, y, l.PanelRowH), a.theme.TextMuted)
			break
		}
		row := fmt.Sprintf("%s : %s", a.state.FormatAddress(v.Start), v.Name)
		text.Draw(screen, row, face, textX, baseline(face, y, l.PanelRowH), a.theme.Text)
	}

	id, ok := a.state.SelectedID()
	if !ok {
		return
	}
	v, _ := a.state.View(id)
	lines := []string{
		v.Name,
		fmt.Sprintf("start %s  end %s", a.state.FormatAddress(v.Start), a.state.FormatAddress(v.End)),
		fmt.Sprintf("size %d bytes", v.Size()),
		fmt.Sprintf("mode %s", v.Mode),
	}
	y := l.PanelY + l.PanelH - detailH
	for _, s := range lines {
		text.Draw(screen, s, face, l.PanelX+8, baseline(face, y, l.PanelRowH), a.theme.TextMuted)
		y += l.PanelRowH
	}
}

func (a *App) drawStatus(screen *ebiten.Image) {
	face := a.uiFace(11)
	y := baseline(face, a.layout.StatusY, a.layout.StatusH)
	left := a.status
	if start, end, ok := a.state.SelectionRange(); ok {
		left = fmt.Sprintf("Selection %s..%s (%d bytes)  %s", a.state.FormatAddress(start), a.state.FormatAddress(end), end-start+1, a.status)
	}
	text.Draw(screen, left, face, 12, y, a.theme.Text)

	right := fmt.Sprintf("%d cols  time per frame: %d ms", a.state.Layout().Columns, a.state.FrameDeltaMs())
	text.Draw(screen, right, face, a.screenWidth()-measureString(face, right)-12, y, a.theme.TextMuted)
}

func (a *App) drawTooltip(screen *ebiten.Image) {
	if !a.hoverOK || a.prompt != promptNone {
		return
	}
	name := a.state.Tooltip(a.hoverAddr)
	if name == "" {
		return
	}
	face := a.uiFace(11)
	x, y := ebiten.CursorPosition()
	w := measureString(face, name) + 12
	h := a.layout.PanelRowH
	r := ui.Rect{X: x + 14, Y: y + 14, W: w, H: h}
	fillRect(screen, r, a.theme.Tooltip)
	strokeRect(screen, r, a.theme.Border)
	text.Draw(screen, name, face, r.X+6, baseline(face, r.Y, r.H), a.theme.Text)
}

func (a *App) drawHelp(screen *ebiten.Image, w, h int) {
	pw, ph := int(float64(w)*0.6), int(float64(h)*0.7)
	r := ui.Rect{X: (w - pw) / 2, Y: (h - ph) / 2, W: pw, H: ph}
	fillRect(screen, r, a.theme.Panel)
	strokeRect(screen, r, a.theme.Border)

	text.Draw(screen, "Help", a.uiFace(13), r.X+20, r.Y+30, a.theme.Text)
	lines := []string{
		"Ctrl+O: open binary | Ctrl+W: close",
		"Ctrl+S: save views | Ctrl+Shift+S: save as | Ctrl+L: load views",
		"Ctrl+E: set project password | Ctrl+G: go to address",
		"Drag over bytes to select | N or right click: create view",
		"Click a view in the list to select it | Del: remove view",
		"Tab: filled / outlined | C: cycle color | Ctrl+C: copy as hex",
		"R: rename view | B: edit view bounds",
		"+ / -: columns | A: ASCII column | Z: grey out zeroes",
		"Wheel, arrows, PgUp/PgDn, Home/End: scroll",
		"Ctrl+= / Ctrl+-: UI scale | F1: help | Esc: quit",
	}
	face := a.uiFace(11)
	y := r.Y + 62
	for _, s := range lines {
		text.Draw(screen, s, face, r.X+20, y, a.theme.TextMuted)
		y += int(22 * a.scale())
	}
}

func (a *App) screenWidth() int {
	if a.frameBuffer != nil {
		return a.frameBuffer.W
	}
	return a.screenW
}

// baseline vertically centers a single line of face inside [top, top+height).
func baseline(face font.Face, top, height int) int {
	m := face.Metrics()
	return top + (height-m.Height.Ceil())/2 + m.Ascent.Ceil()
}
