package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"hexview/internal/ui"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

const maxPromptLen = 128

func (a *App) openPrompt(kind promptKind, path string) {
	a.prompt = kind
	a.promptInput = ""
	a.promptError = ""
	a.promptPath = path
}

func (a *App) closePrompt() {
	a.prompt = promptNone
	a.promptInput = ""
	a.promptError = ""
	a.promptPath = ""
	a.promptView = 0
}

func (a *App) handlePromptInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		a.submitPrompt()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && a.promptInput != "" {
		_, size := utf8.DecodeLastRuneInString(a.promptInput)
		a.promptInput = a.promptInput[:len(a.promptInput)-max(size, 1)]
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if clip, err := clipboard.ReadAll(); err == nil {
			a.promptInput += strings.TrimSpace(clip)
		}
	}
	if ctrl {
		return
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x20 || !utf8.ValidRune(r) {
			continue
		}
		a.promptInput += string(r)
	}
	if len(a.promptInput) > maxPromptLen {
		a.promptInput = a.promptInput[:maxPromptLen]
	}
}

func (a *App) submitPrompt() {
	switch a.prompt {
	case promptGoto:
		addr, err := ui.ParseAddress(a.promptInput)
		if err != nil {
			a.promptError = err.Error()
			return
		}
		row, ok := a.state.Goto(addr)
		if !ok {
			a.promptError = fmt.Sprintf("%X is outside %s", addr, a.state.RangeLabel())
			return
		}
		a.scrollTo(row)
		a.status = fmt.Sprintf("Jumped to %s", a.state.FormatAddress(addr-a.state.BaseAddress()))
		a.closePrompt()
	case promptSetPassword:
		a.projectPassword = a.promptInput
		if a.projectPassword == "" {
			a.status = "Project encryption disabled"
		} else {
			a.status = "Project encryption enabled"
		}
		a.closePrompt()
	case promptOpenPassword:
		path, password := a.promptPath, a.promptInput
		a.closePrompt()
		if err := a.importProject(path, password); err != nil {
			a.fail("Load project", err)
		}
	case promptRename:
		if !a.state.SetViewName(a.promptView, a.promptInput) {
			a.closePrompt()
			return
		}
		v, _ := a.state.View(a.promptView)
		a.status = fmt.Sprintf("Renamed to %q", v.Name)
		a.closePrompt()
	case promptBounds:
		start, end, err := ui.ParseRange(a.promptInput)
		if err != nil {
			a.promptError = err.Error()
			return
		}
		lo, okLo := a.state.BufferAddress(start)
		hi, okHi := a.state.BufferAddress(end)
		if !okLo || !okHi {
			a.promptError = fmt.Sprintf("Bounds must lie in %s", a.state.RangeLabel())
			return
		}
		if !a.state.SetViewBounds(a.promptView, lo, hi) {
			a.closePrompt()
			return
		}
		v, _ := a.state.View(a.promptView)
		a.status = fmt.Sprintf("%s: %s..%s (%d bytes)", v.Name, a.state.FormatAddress(v.Start), a.state.FormatAddress(v.End), v.Size())
		a.closePrompt()
	default:
		a.closePrompt()
	}
}

func (a *App) promptTitle() (string, string) {
	switch a.prompt {
	case promptGoto:
		return "Go to address", "Hex address, " + a.state.RangeLabel()
	case promptSetPassword:
		return "Project password", "Saved view sets are encrypted with this password. Leave empty to disable."
	case promptOpenPassword:
		return "Password required", "Enter the password for this view set."
	case promptRename:
		return "Rename view", "New name for the selected view."
	case promptBounds:
		return "View bounds", "Start..end as hex addresses, " + a.state.RangeLabel()
	}
	return "", ""
}

func (a *App) drawPrompt(screen *ebiten.Image, w, h int) {
	scale := a.scale()
	pw := min(int(460*scale), w-40)
	ph := min(int(150*scale), h-40)
	r := ui.Rect{X: (w - pw) / 2, Y: (h - ph) / 2, W: pw, H: ph}

	fillRect(screen, ui.Rect{W: w, H: h}, color.RGBA{A: 110})
	fillRect(screen, r, a.theme.Panel)
	strokeRect(screen, r, a.theme.Border)

	title, hint := a.promptTitle()
	titleFace := a.uiFace(13)
	labelFace := a.uiFace(11)
	text.Draw(screen, title, titleFace, r.X+16, r.Y+26, a.theme.Text)
	text.Draw(screen, hint, labelFace, r.X+16, r.Y+48, a.theme.TextMuted)

	input := ui.Rect{X: r.X + 16, Y: r.Y + 60, W: r.W - 32, H: int(30 * scale)}
	fillRect(screen, input, a.theme.Pane)
	strokeRect(screen, input, a.theme.Accent)
	shown := a.promptInput
	if a.prompt == promptSetPassword || a.prompt == promptOpenPassword {
		shown = strings.Repeat("*", utf8.RuneCountInString(a.promptInput))
	}
	text.Draw(screen, shown, labelFace, input.X+8, input.Y+input.H/2+5, a.theme.Text)
	if (a.frameTick/30)%2 == 0 {
		cx := float64(input.X + 8 + measureString(labelFace, shown))
		ebitenutil.DrawLine(screen, cx, float64(input.Y+6), cx, float64(input.Y+input.H-6), a.theme.Text)
	}
	if a.promptError != "" {
		text.Draw(screen, a.promptError, labelFace, r.X+16, input.Y+input.H+20, color.RGBA{R: 230, G: 90, B: 90, A: 255})
	}
}

func fillRect(screen *ebiten.Image, r ui.Rect, c color.RGBA) {
	for y := r.Y; y < r.Y+r.H; y++ {
		ebitenutil.DrawLine(screen, float64(r.X), float64(y), float64(r.X+r.W), float64(y), c)
	}
}

func strokeRect(screen *ebiten.Image, r ui.Rect, c color.RGBA) {
	x0, y0 := float64(r.X), float64(r.Y)
	x1, y1 := float64(r.X+r.W), float64(r.Y+r.H)
	ebitenutil.DrawLine(screen, x0, y0, x1, y0, c)
	ebitenutil.DrawLine(screen, x0, y1, x1, y1, c)
	ebitenutil.DrawLine(screen, x0, y0, x0, y1, c)
	ebitenutil.DrawLine(screen, x1, y0, x1, y1, c)
}
