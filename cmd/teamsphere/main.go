// Package main is the entry point for the team sphere viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/teamsphere/internal/app"
	"github.com/Faultbox/teamsphere/internal/config"
	"github.com/Faultbox/teamsphere/internal/logger"
	"github.com/Faultbox/teamsphere/internal/menu"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Team Sphere ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.ChooseManifest() {
		path, err := dialog.File().
			Filter("Team manifest", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Team Manifest").
			Load()
		switch {
		case err == nil:
			cfg.Content.File = path
		case errors.Is(err, dialog.ErrCancelled):
			logger.Info("manifest selection cancelled, using configured file")
		default:
			logger.Warn("file dialog failed", zap.Error(err))
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		fatal("failed to start", err)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Close()
		fatal("viewer error", err)
	}

	logger.Info("closed normally")
}

// fatal logs err and shows it in a native message box, since a failed GL
// setup leaves no window to report in.
func fatal(msg string, err error) {
	logger.Error(msg, zap.Error(err))

	hint := ""
	switch {
	case errors.Is(err, menu.ErrNoContext):
		hint = "\n\nOpenGL 4.1 is required. Check your graphics drivers."
	case errors.Is(err, menu.ErrShaderCompile):
		hint = "\n\nThe graphics driver rejected the sphere shaders."
	}
	dialog.Message("%s: %v%s", msg, err, hint).Title("Team Sphere").Error()

	logger.Sync()
	os.Exit(1)
}
