package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"hexview/internal/editor"
	"hexview/internal/watch"
	"hexview/pkg/viewdoc"

	"github.com/atotto/clipboard"
	"github.com/sqweek/dialog"
)

const projectExt = "hexviews"

func (a *App) openBinaryDialog() {
	path, err := dialog.File().Title("Open binary").Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			a.fail("Open", err)
		}
		return
	}
	if err := a.openBinary(path); err != nil {
		a.fail("Open", err)
	}
}

func (a *App) openBinary(path string) error {
	path = filepath.Clean(path)
	if err := a.state.LoadFile(path, a.settings.BaseAddress); err != nil {
		return err
	}
	a.binaryPath = path
	a.firstRow = 0
	a.relayout()
	a.status = fmt.Sprintf("Opened %s (%d bytes)", filepath.Base(path), a.state.Size())
	a.log.Info("buffer loaded", "path", path, "size", a.state.Size())
	a.rewatch()
	return nil
}

func (a *App) closeBinary() {
	a.stopWatching()
	a.state.Close()
	a.binaryPath = ""
	a.projectPath = ""
	a.firstRow = 0
	a.relayout()
	a.status = "Closed"
}

func (a *App) rewatch() {
	a.stopWatching()
	if !a.settings.WatchFiles || a.binaryPath == "" {
		return
	}
	w, err := watch.New(a.binaryPath, a.log)
	if err != nil {
		a.log.Warn("file watching disabled", "path", a.binaryPath, "err", err)
		return
	}
	a.watcher = w
}

func (a *App) stopWatching() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		a.log.Warn("closing file watcher", "err", err)
	}
	a.watcher = nil
}

// drainWatcher reloads the buffer when the file changed on disk. It never
// blocks the frame.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changes():
	default:
		return
	}
	if err := a.state.LoadFile(a.binaryPath, a.settings.BaseAddress); err != nil {
		a.log.Warn("reload failed", "path", a.binaryPath, "err", err)
		return
	}
	a.relayout()
	a.status = fmt.Sprintf("Reloaded %s (%d bytes)", filepath.Base(a.binaryPath), a.state.Size())
	a.log.Info("buffer reloaded", "path", a.binaryPath, "size", a.state.Size())
}

func (a *App) saveProject(saveAs bool) error {
	if a.state.ViewCount() == 0 && a.state.Size() == 0 {
		return editor.ErrNoBuffer
	}
	path := a.projectPath
	if saveAs || path == "" {
		p, err := dialog.File().Filter("Hex view projects", projectExt).Title("Save views").Save()
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return nil
			}
			return err
		}
		path = p
	}
	if path == "" {
		return errors.New("no file selected")
	}
	if filepath.Ext(path) == "" {
		path += "." + projectExt
	}
	opts := viewdoc.SaveOptions{
		Compression: a.settings.CompressProjects,
		Encryption: viewdoc.EncryptionOptions{
			Enabled:  a.projectPassword != "",
			Password: a.projectPassword,
		},
	}
	if err := viewdoc.SaveWithOptions(path, a.state.ExportViews(), opts); err != nil {
		return err
	}
	a.projectPath = path
	a.status = fmt.Sprintf("Saved %d views to %s", a.state.ViewCount(), filepath.Base(path))
	a.log.Info("views saved", "path", path, "views", a.state.ViewCount(), "encrypted", opts.Encryption.Enabled)
	return nil
}

func (a *App) loadProjectDialog() {
	path, err := dialog.File().Filter("Hex view projects", projectExt).Title("Load views").Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			a.fail("Load project", err)
		}
		return
	}
	if err := a.loadProject(path); err != nil {
		a.fail("Load project", err)
	}
}

// loadProject imports a saved view set. Encrypted files without a known
// password open the password prompt instead of failing.
func (a *App) loadProject(path string) error {
	path = filepath.Clean(path)
	info, err := viewdoc.InspectEnvelope(path)
	if err != nil {
		return err
	}
	if info.Encrypted && strings.TrimSpace(a.projectPassword) == "" {
		a.openPrompt(promptOpenPassword, path)
		return nil
	}
	return a.importProject(path, a.projectPassword)
}

func (a *App) importProject(path, password string) error {
	doc, err := viewdoc.LoadWithOptions(path, viewdoc.LoadOptions{Password: password})
	if err != nil {
		if errors.Is(err, viewdoc.ErrPasswordRequired) || errors.Is(err, viewdoc.ErrInvalidPassword) {
			a.openPrompt(promptOpenPassword, path)
			a.promptError = "Incorrect password. Try again."
			return nil
		}
		return err
	}
	if err := a.state.ImportViews(doc); err != nil {
		if errors.Is(err, editor.ErrNoBuffer) {
			return errors.New("open a binary before loading views")
		}
		return err
	}
	a.projectPath = path
	a.projectPassword = password
	a.status = fmt.Sprintf("Loaded %d views from %s", a.state.ViewCount(), filepath.Base(path))
	a.log.Info("views loaded", "path", path, "views", a.state.ViewCount())
	return nil
}

// copySelection puts the live selection, or else the selected view, on the
// clipboard as hex pairs.
func (a *App) copySelection() {
	start, end, ok := a.state.SelectionRange()
	if !ok {
		id, sel := a.state.SelectedID()
		if !sel {
			return
		}
		v, _ := a.state.View(id)
		start, end = v.Start, v.End
	}
	s := a.state.HexString(start, end)
	if err := clipboard.WriteAll(s); err != nil {
		a.fail("Copy", err)
		return
	}
	a.status = fmt.Sprintf("Copied %d bytes", end-start+1)
}
