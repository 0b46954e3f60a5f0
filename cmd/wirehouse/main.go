// Package main is the entry point for the interactive wireframe viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/wirehouse/internal/app"
	"github.com/Faultbox/wirehouse/internal/config"
	"github.com/Faultbox/wirehouse/internal/engine/input"
	"github.com/Faultbox/wirehouse/internal/engine/input/sdlinput"
	"github.com/Faultbox/wirehouse/internal/engine/surface"
	"github.com/Faultbox/wirehouse/internal/engine/surface/glsurface"
	"github.com/Faultbox/wirehouse/internal/logger"
)

var usage = []string{
	"Starting 3D Suburban Scene Renderer...",
	"",
	"Controls (hold keys for continuous movement):",
	"  W/S         Rotate around X axis",
	"  A/D         Rotate around Y axis",
	"  Q/E         Rotate around Z axis",
	"  Up/Down     Zoom in / out",
	"  Left/Right  Pan horizontally",
	"  PgUp/PgDn   Pan vertically",
	"  R           Reset view",
	"  F12         Save screenshot",
	"  Escape      Exit",
	"",
	"Click on the graphics window to give it focus, then use the controls.",
}

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

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	fmt.Println(strings.Join(usage, "\n"))
	logger.Sugar.Debugf("Config: %+v", cfg)

	fonts, err := surface.LoadFonts()
	if err != nil {
		logger.Error("failed to load fonts", zap.Error(err))
		os.Exit(1)
	}
	defer fonts.Close()

	win, err := glsurface.New(glsurface.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		VSync:      cfg.Window.VSync,
		Background: app.Background(cfg),
	}, fonts)
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		os.Exit(1)
	}

	events := sdlinput.New(input.NewSource(input.NewKeySet()))
	viewer, err := app.New(app.Options{
		Config:  cfg,
		Surface: win,
		Source:  events.Source(),
		Poll:    events.Poll,
	})
	if err != nil {
		_ = win.Close()
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := viewer.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
