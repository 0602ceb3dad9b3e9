// Package main is the entry point for the twisted surface viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/twistview/internal/app"
	"github.com/Faultbox/twistview/internal/config"
	"github.com/Faultbox/twistview/internal/engine/window"
	"github.com/Faultbox/twistview/internal/logger"
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

	logger.Info("=== Twisted Surface Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
		return
	}

	v, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer",
			zap.Stringer("kind", app.KindOf(err)),
			zap.Error(err),
		)
		// Startup failures are reported once and never retried.
		window.ShowError(cfg.Window.Title, app.UserMessage(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
