package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"hexview/internal/config"
	"hexview/internal/editor"
	"hexview/internal/platform"
	"hexview/internal/render"
	"hexview/internal/ui"
	"hexview/internal/watch"
	"hexview/pkg/viewdoc"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptGoto
	promptOpenPassword
	promptSetPassword
	promptRename
	promptBounds
)

// viewColors is the palette cycled through with the C key.
var viewColors = []viewdoc.Color{
	viewdoc.RGBA8(0, 128, 128, 255),
	viewdoc.RGBA8(170, 60, 60, 200),
	viewdoc.RGBA8(60, 140, 70, 200),
	viewdoc.RGBA8(60, 90, 170, 200),
	viewdoc.RGBA8(200, 130, 40, 200),
	viewdoc.RGBA8(130, 70, 170, 200),
}

type Options struct {
	Settings     config.Settings
	SettingsPath string
	Window       platform.WindowConfig
	Logger       *slog.Logger
	BinaryPath   string
	ProjectPath  string
}

type App struct {
	log          *slog.Logger
	settings     config.Settings
	settingsPath string
	window       platform.WindowConfig

	theme ui.Theme
	state *editor.State

	frameBuffer *render.FrameBuffer
	canvas      *ebiten.Image
	sink        *ui.FrameSink

	fonts      fontBank
	uiScales   []float32
	uiScaleIdx int
	metrics    editor.FontMetrics

	binaryPath      string
	projectPath     string
	projectPassword string
	watcher         *watch.Watcher
	status          string

	layout   ui.Layout
	origin   editor.Point
	firstRow int

	prompt        promptKind
	promptInput   string
	promptError   string
	promptPath    string
	promptView    uint64
	showHelp      bool
	lastFrame     time.Time
	frameTick     uint64
	hoverAddr     uint64
	hoverOK       bool
	pointerInPane bool

	screenW int
	screenH int
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	settings := opts.Settings.Normalize()
	state := editor.NewState(nil)
	state.SetOptions(editor.Options{
		Columns:       settings.Columns,
		MidGroupSize:  settings.MidGroupSize,
		AddrDigits:    settings.AddrDigits,
		ShowAscii:     settings.ShowAscii,
		GreyOutZeroes: settings.GreyOutZeroes,
	})
	a := &App{
		log:          log,
		settings:     settings,
		settingsPath: opts.SettingsPath,
		window:       opts.Window.Normalize(),
		theme:        ui.DefaultTheme(),
		state:        state,
		fonts:        newFontBank(),
		uiScales:     []float32{1.0, 1.25, 1.5, 2.0},
		status:       "Ctrl+O to open a binary, F1 for help",
	}
	a.relayout()
	if opts.BinaryPath != "" {
		if err := a.openBinary(opts.BinaryPath); err != nil {
			a.fail("Open", err)
		}
	}
	if opts.ProjectPath != "" {
		if err := a.loadProject(opts.ProjectPath); err != nil {
			a.fail("Load project", err)
		}
	}
	return a
}

func (a *App) Run() error {
	ebiten.SetWindowTitle(a.window.Title)
	ebiten.SetWindowSize(a.window.WidthPx, a.window.HeightPx)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(a.window.MinWidthPx, a.window.MinHeightPx, -1, -1)
	err := ebiten.RunGame(a)
	a.shutdown()
	if err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) shutdown() {
	a.stopWatching()
	if a.settingsPath == "" {
		return
	}
	o := a.state.Options()
	a.settings.Columns = o.Columns
	a.settings.MidGroupSize = o.MidGroupSize
	a.settings.AddrDigits = o.AddrDigits
	a.settings.ShowAscii = o.ShowAscii
	a.settings.GreyOutZeroes = o.GreyOutZeroes
	if err := config.Save(a.settingsPath, a.settings); err != nil {
		a.log.Warn("saving settings failed", "path", a.settingsPath, "err", err)
	}
}

func (a *App) Update() error {
	a.frameTick++
	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.state.Apply(platform.Event{Type: platform.EventFrame, DeltaMs: now.Sub(a.lastFrame).Milliseconds()})
	}
	a.lastFrame = now

	a.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case a.prompt != promptNone:
			a.closePrompt()
			return nil
		case a.showHelp:
			a.showHelp = false
			return nil
		}
		return ebiten.Termination
	}
	if a.prompt != promptNone {
		a.handlePromptInput()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showHelp = !a.showHelp
	}
	if a.showHelp {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			a.showHelp = false
		}
		return nil
	}

	a.handleKeys()
	a.handleScroll()
	a.handlePointer()

	if a.state.LayoutChanged() {
		a.relayout()
	}
	a.clampScroll()
	return nil
}

func (a *App) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	pressed := inpututil.IsKeyJustPressed

	if ctrl {
		switch {
		case pressed(ebiten.KeyO):
			a.openBinaryDialog()
		case pressed(ebiten.KeyS):
			if err := a.saveProject(shift); err != nil {
				a.fail("Save project", err)
			}
		case pressed(ebiten.KeyL):
			a.loadProjectDialog()
		case pressed(ebiten.KeyW):
			a.closeBinary()
		case pressed(ebiten.KeyE):
			a.openPrompt(promptSetPassword, "")
		case pressed(ebiten.KeyG):
			a.openPrompt(promptGoto, "")
		case pressed(ebiten.KeyC):
			a.copySelection()
		case pressed(ebiten.KeyEqual), pressed(ebiten.KeyKPAdd):
			a.bumpUIScale(1)
		case pressed(ebiten.KeyMinus), pressed(ebiten.KeyKPSubtract):
			a.bumpUIScale(-1)
		}
		return
	}

	switch {
	case pressed(ebiten.KeyN):
		a.createView()
	case pressed(ebiten.KeyDelete), pressed(ebiten.KeyBackspace):
		if id, ok := a.state.SelectedID(); ok {
			a.state.RemoveView(id)
			a.status = "View removed"
		}
	case pressed(ebiten.KeyTab):
		a.toggleSelectedMode()
	case pressed(ebiten.KeyC):
		a.cycleSelectedColor()
	case pressed(ebiten.KeyR):
		a.editSelected(promptRename)
	case pressed(ebiten.KeyB):
		a.editSelected(promptBounds)
	case pressed(ebiten.KeyA):
		a.state.SetShowAscii(!a.state.Options().ShowAscii)
	case pressed(ebiten.KeyZ):
		a.state.SetGreyOutZeroes(!a.state.Options().GreyOutZeroes)
	case pressed(ebiten.KeyEqual), pressed(ebiten.KeyKPAdd):
		a.state.SetColumns(a.state.Options().Columns + 1)
		a.status = fmt.Sprintf("%d columns", a.state.Options().Columns)
	case pressed(ebiten.KeyMinus), pressed(ebiten.KeyKPSubtract):
		a.state.SetColumns(a.state.Options().Columns - 1)
		a.status = fmt.Sprintf("%d columns", a.state.Options().Columns)
	case pressed(ebiten.KeyPageDown):
		a.firstRow += max(a.visibleRows()-1, 1)
	case pressed(ebiten.KeyPageUp):
		a.firstRow -= max(a.visibleRows()-1, 1)
	case pressed(ebiten.KeyHome):
		a.firstRow = 0
	case pressed(ebiten.KeyEnd):
		a.firstRow = a.state.RowCount()
	case pressed(ebiten.KeyArrowDown):
		a.firstRow++
	case pressed(ebiten.KeyArrowUp):
		a.firstRow--
	}
}

func (a *App) handleScroll() {
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		a.firstRow -= int(wheelY * 3)
	}
}

func (a *App) handlePointer() {
	x, y := ebiten.CursorPosition()
	p := editor.Point{X: float64(x), Y: float64(y)}
	a.pointerInPane = a.layout.InPane(x, y)
	a.hoverAddr, a.hoverOK = 0, false
	if a.pointerInPane {
		a.hoverAddr, a.hoverOK = a.state.HitTest(a.origin, a.firstRow, p)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if row, ok := a.layout.PanelRowAt(x, y); ok {
			a.selectPanelRow(row)
			return
		}
		if a.hoverOK {
			a.state.Apply(platform.Event{Type: platform.EventPointerDown, Addr: a.hoverAddr})
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && a.hoverOK {
		a.state.Apply(platform.Event{Type: platform.EventPointerMove, Addr: a.hoverAddr})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.state.Apply(platform.Event{Type: platform.EventPointerUp})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.createView()
	}
}

func (a *App) selectPanelRow(row int) {
	views := a.state.Views()
	if row >= len(views) {
		return
	}
	v := views[row]
	a.state.SelectView(v.ID)
	if r, ok := a.state.Goto(a.state.BaseAddress() + v.Start); ok {
		a.scrollTo(r)
	}
}

func (a *App) createView() {
	v, ok := a.state.CreateViewFromSelection()
	if !ok {
		a.status = "Drag across bytes to select a range first"
		return
	}
	a.status = fmt.Sprintf("Created %q (%d bytes)", v.Name, v.Size())
	a.log.Debug("view created", "id", v.ID, "start", v.Start, "end", v.End)
}

func (a *App) toggleSelectedMode() {
	id, ok := a.state.SelectedID()
	if !ok {
		return
	}
	v, _ := a.state.View(id)
	mode := viewdoc.ModeOutlined
	if v.Mode == viewdoc.ModeOutlined {
		mode = viewdoc.ModeFilled
	}
	a.state.SetViewMode(id, mode)
	a.status = fmt.Sprintf("%s: %s", v.Name, mode)
}

// editSelected opens a rename or bounds prompt prefilled from the selected
// view.
func (a *App) editSelected(kind promptKind) {
	id, ok := a.state.SelectedID()
	if !ok {
		a.status = "Select a view first"
		return
	}
	v, _ := a.state.View(id)
	a.openPrompt(kind, "")
	a.promptView = id
	switch kind {
	case promptRename:
		a.promptInput = v.Name
	case promptBounds:
		a.promptInput = a.state.FormatAddress(v.Start) + ".." + a.state.FormatAddress(v.End)
	}
}

func (a *App) cycleSelectedColor() {
	id, ok := a.state.SelectedID()
	if !ok {
		return
	}
	v, _ := a.state.View(id)
	next := 0
	for i, c := range viewColors {
		if c == v.Color {
			next = (i + 1) % len(viewColors)
			break
		}
	}
	a.state.SetViewColor(id, viewColors[next])
}

func (a *App) visibleRows() int {
	return a.layout.VisibleRows(a.metrics.LineHeight)
}

func (a *App) scrollTo(row int) {
	vis := a.visibleRows()
	if row < a.firstRow || row >= a.firstRow+vis {
		a.firstRow = row - vis/2
	}
	a.clampScroll()
}

func (a *App) clampScroll() {
	maxRow := max(a.state.RowCount()-a.visibleRows(), 0)
	a.firstRow = min(max(a.firstRow, 0), maxRow)
}

func (a *App) hexFace() font.Face {
	return a.fonts.face(true, a.settings.FontSize, a.scale())
}

func (a *App) uiFace(size float64) font.Face {
	return a.fonts.face(false, size, a.scale())
}

func (a *App) scale() float32 { return a.uiScales[a.uiScaleIdx] }

func (a *App) relayout() {
	a.metrics = metricsFor(a.hexFace())
	a.state.Relayout(a.metrics)
}

func (a *App) bumpUIScale(delta int) {
	prev := a.uiScaleIdx
	a.uiScaleIdx = min(max(a.uiScaleIdx+delta, 0), len(a.uiScales)-1)
	if prev != a.uiScaleIdx {
		a.fonts.reset()
		a.relayout()
	}
	a.status = fmt.Sprintf("UI scale %.0f%%", a.scale()*100)
}

func (a *App) fail(what string, err error) {
	a.status = what + " failed: " + err.Error()
	a.log.Error(what+" failed", "err", err)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	a.screenW = max(outsideWidth, a.window.MinWidthPx)
	a.screenH = max(outsideHeight, a.window.MinHeightPx)
	return a.screenW, a.screenH
}

func (a *App) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.frameBuffer == nil {
		a.frameBuffer = render.NewFrameBuffer(w, h)
		a.canvas = ebiten.NewImage(w, h)
	} else if a.frameBuffer.W != w || a.frameBuffer.H != h {
		a.frameBuffer.Resize(w, h)
		a.canvas.Deallocate()
		a.canvas = ebiten.NewImage(w, h)
	}

	a.layout = ui.DrawShell(a.frameBuffer, a.theme, a.scale(), a.selectedPanelRow())
	pad := float64(a.layout.PaneX) / 2
	a.origin = editor.Point{X: float64(a.layout.PaneX) + pad, Y: float64(a.layout.PaneY) + pad}

	if a.sink == nil {
		a.sink = ui.NewFrameSink(a.frameBuffer, 0, 0, 0, 0)
	}
	a.sink.FB = a.frameBuffer
	a.sink.Clip = ui.Rect{X: a.layout.PaneX + 1, Y: a.layout.PaneY + 1, W: a.layout.PaneW - 2, H: a.layout.PaneH - 2}
	a.sink.Reset()
	a.state.Draw(a.sink, a.origin, a.firstRow, a.visibleRows())
	a.drawPanelSwatches()

	a.canvas.WritePixels(a.frameBuffer.Pixels)
	screen.DrawImage(a.canvas, nil)

	a.drawHexText(screen)
	a.drawTopBar(screen)
	a.drawPanelText(screen)
	a.drawStatus(screen)
	a.drawTooltip(screen)
	if a.prompt != promptNone {
		a.drawPrompt(screen, w, h)
	}
	if a.showHelp {
		a.drawHelp(screen, w, h)
	}
}

func (a *App) selectedPanelRow() int {
	id, ok := a.state.SelectedID()
	if !ok {
		return -1
	}
	for i, v := range a.state.Views() {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func (a *App) statusName() string {
	if a.binaryPath == "" {
		return "no buffer"
	}
	return filepath.Base(a.binaryPath)
}
