package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hexview/internal/app"
	"hexview/internal/config"
	"hexview/internal/platform"
	"hexview/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "settings file (default: user config dir)")
		project    = flag.String("views", "", "view set to load after the binary")
		base       = flag.String("base", "", "display base address in hex, overrides the settings file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Warn("no user config dir, settings will not persist", "err", err)
		}
		path = p
	}
	settings := config.Default()
	if path != "" {
		s, err := config.Load(path)
		if err != nil {
			logger.Warn("settings file ignored", "path", path, "err", err)
		}
		settings = s
	}
	if *base != "" {
		v, err := ui.ParseAddress(*base)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -base %q: %v\n", *base, err)
			os.Exit(2)
		}
		settings.BaseAddress = v
	}

	window := platform.DefaultWindowConfig()
	if flag.NArg() > 0 {
		window.Title += " - " + filepath.Base(flag.Arg(0))
	}

	application := app.New(app.Options{
		Settings:     settings,
		SettingsPath: path,
		Window:       window,
		Logger:       logger,
		BinaryPath:   flag.Arg(0),
		ProjectPath:  *project,
	})
	if err := application.Run(); err != nil {
		logger.Error("hexview failed", "err", err)
		os.Exit(1)
	}
}
