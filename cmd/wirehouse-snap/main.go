// Command wirehouse-snap renders the scene headless and writes the last
// frame to an image file.
//
// Usage:
//
//	wirehouse-snap -frames 200 -hold d,Up -out house.webp
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/wirehouse/internal/app"
	"github.com/Faultbox/wirehouse/internal/config"
	"github.com/Faultbox/wirehouse/internal/engine/debug"
	"github.com/Faultbox/wirehouse/internal/engine/input"
	"github.com/Faultbox/wirehouse/internal/engine/surface"
	"github.com/Faultbox/wirehouse/internal/logger"
)

var (
	flagFrames = flag.Int("frames", 120, "Number of frames to simulate")
	flagHold   = flag.String("hold", "", "Comma-separated keys held for every frame (e.g. w,a,Up,Page_Up)")
	flagOut    = flag.String("out", "wirehouse.png", "Output image path")
	flagFormat = flag.String("format", "", "Output format: png, webp or tga (default from extension)")
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

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	format := debug.FormatFromPath(*flagOut)
	if *flagFormat != "" {
		if format, err = debug.ParseFormat(*flagFormat); err != nil {
			logger.Error("bad format", zap.Error(err))
			os.Exit(1)
		}
	}

	keys := input.NewKeySet()
	for _, name := range strings.Split(*flagHold, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k := input.KeyFromName(name)
		if k == input.KeyNone || k.IsSignal() {
			logger.Warn("ignoring key", zap.String("key", name))
			continue
		}
		keys.Press(k)
	}

	fonts, err := surface.LoadFonts()
	if err != nil {
		logger.Error("failed to load fonts", zap.Error(err))
		os.Exit(1)
	}
	defer fonts.Close()

	canvas, err := surface.NewImage(cfg.Window.Width, cfg.Window.Height, app.Background(cfg), fonts)
	if err != nil {
		logger.Error("failed to create canvas", zap.Error(err))
		os.Exit(1)
	}
	canvas.SetLineWidth(cfg.Render.LineWidth)

	viewer, err := app.New(app.Options{
		Config:  cfg,
		Surface: canvas,
		Source:  input.NewSource(keys),
	})
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer viewer.Close()

	for i := 0; i < *flagFrames; i++ {
		if _, err := viewer.Step(); err != nil {
			logger.Error("frame failed", zap.Int("frame", i), zap.Error(err))
			os.Exit(1)
		}
	}

	if err := debug.WriteFile(*flagOut, canvas.Image(), format); err != nil {
		logger.Error("failed to write image", zap.Error(err))
		os.Exit(1)
	}

	view := viewer.Camera().Current()
	logger.Info("snapshot written",
		zap.String("file", *flagOut),
		zap.String("format", string(format)),
		zap.Int("frames", canvas.Frames()),
		zap.Float64("rotation_x", view.RotationX),
		zap.Float64("rotation_y", view.RotationY),
		zap.Float64("zoom", view.Zoom))
}
