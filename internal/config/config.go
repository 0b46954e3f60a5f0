// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Render     RenderConfig     `yaml:"render"`
	Frame      FrameConfig      `yaml:"frame"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // CSS color name
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the default view and how fast keys move it.
type CameraConfig struct {
	RotationX float64 `yaml:"rotation_x"`
	RotationY float64 `yaml:"rotation_y"`
	RotationZ float64 `yaml:"rotation_z"`
	Zoom      float64 `yaml:"zoom"`
	MinZoom   float64 `yaml:"min_zoom"`
	Smoothing float64 `yaml:"smoothing"` // fraction of the gap closed per frame

	RotationStep float64 `yaml:"rotation_step"`
	ZoomStep     float64 `yaml:"zoom_step"`
	PanStep      float64 `yaml:"pan_step"`
}

// RenderConfig holds projection and overlay settings.
type RenderConfig struct {
	FocalDistance   float64 `yaml:"focal_distance"`
	ProjectionScale float64 `yaml:"projection_scale"`
	OffscreenLimit  float64 `yaml:"offscreen_limit"`
	LineWidth       float64 `yaml:"line_width"`
	ShowHUD         bool    `yaml:"show_hud"`
	HintsX          float64 `yaml:"hints_x"`
	TelemetryX      float64 `yaml:"telemetry_x"`
	HUDTopY         float64 `yaml:"hud_top_y"`
	RowHeight       float64 `yaml:"row_height"`
}

// FrameConfig holds frame pacing.
type FrameConfig struct {
	Interval time.Duration `yaml:"interval"`
	Idle     time.Duration `yaml:"idle"`
}

// ScreenshotConfig holds where F12 captures go.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png, webp or tga
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the standard viewer settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Wirehouse - 3D Suburban Scene",
			Width:      1200,
			Height:     800,
			Background: "lightblue",
			VSync:      false,
		},
		Camera: CameraConfig{
			RotationX:    0.450,
			RotationY:    3.110,
			RotationZ:    0.000,
			Zoom:         0.340,
			MinZoom:      0.1,
			Smoothing:    0.12,
			RotationStep: 0.01,
			ZoomStep:     0.1,
			PanStep:      5.0,
		},
		Render: RenderConfig{
			FocalDistance:   5.0,
			ProjectionScale: 100.0,
			OffscreenLimit:  8000,
			LineWidth:       1.0,
			ShowHUD:         true,
			HintsX:          -580,
			TelemetryX:      350,
			HUDTopY:         350,
			RowHeight:       20,
		},
		Frame: FrameConfig{
			Interval: 12 * time.Millisecond,
			Idle:     1 * time.Millisecond,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "wirehouse",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.MinZoom <= 0 {
		errs = append(errs, fmt.Errorf("camera.min_zoom %v must be positive", c.Camera.MinZoom))
	}
	if c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("camera.smoothing %v must be in (0, 1]", c.Camera.Smoothing))
	}
	if c.Render.FocalDistance <= 0 {
		errs = append(errs, fmt.Errorf("render.focal_distance %v must be positive", c.Render.FocalDistance))
	}
	if c.Render.OffscreenLimit <= 0 {
		errs = append(errs, fmt.Errorf("render.offscreen_limit %v must be positive", c.Render.OffscreenLimit))
	}
	if c.Frame.Interval <= 0 || c.Frame.Idle <= 0 {
		errs = append(errs, fmt.Errorf("frame interval %v and idle %v must be positive", c.Frame.Interval, c.Frame.Idle))
	}
	switch c.Screenshot.Format {
	case "png", "webp", "tga":
	default:
		errs = append(errs, fmt.Errorf("screenshot.format %q must be png, webp or tga", c.Screenshot.Format))
	}
	return errors.Join(errs...)
}
