package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1200 || cfg.Window.Height != 800 {
		t.Errorf("expected 1200x800, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Background != "lightblue" {
		t.Errorf("expected lightblue background, got %s", cfg.Window.Background)
	}

	if cfg.Camera.RotationX != 0.450 || cfg.Camera.RotationY != 3.110 || cfg.Camera.RotationZ != 0 {
		t.Errorf("unexpected default rotation %v/%v/%v", cfg.Camera.RotationX, cfg.Camera.RotationY, cfg.Camera.RotationZ)
	}
	if cfg.Camera.Zoom != 0.340 || cfg.Camera.MinZoom != 0.1 {
		t.Errorf("unexpected zoom %v min %v", cfg.Camera.Zoom, cfg.Camera.MinZoom)
	}
	if cfg.Camera.Smoothing != 0.12 {
		t.Errorf("expected smoothing 0.12, got %v", cfg.Camera.Smoothing)
	}

	if cfg.Render.OffscreenLimit != 8000 {
		t.Errorf("expected offscreen limit 8000, got %v", cfg.Render.OffscreenLimit)
	}
	if !cfg.Render.ShowHUD {
		t.Error("expected HUD on by default")
	}

	if cfg.Frame.Interval != 12*time.Millisecond || cfg.Frame.Idle != time.Millisecond {
		t.Errorf("unexpected pacing %v/%v", cfg.Frame.Interval, cfg.Frame.Idle)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  background: "white"

camera:
  zoom: 0.5
  pan_step: 10

frame:
  interval: 16ms

screenshot:
  format: webp

logging:
  level: "debug"
  log_file: "wirehouse.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1600 {
		t.Errorf("expected width 1600, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 800 {
		t.Errorf("height should keep its default, got %d", cfg.Window.Height)
	}
	if cfg.Window.Background != "white" {
		t.Errorf("expected white background, got %s", cfg.Window.Background)
	}
	if cfg.Camera.Zoom != 0.5 || cfg.Camera.PanStep != 10 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Camera.RotationY != 3.110 {
		t.Errorf("rotation_y should keep its default, got %v", cfg.Camera.RotationY)
	}
	if cfg.Frame.Interval != 16*time.Millisecond {
		t.Errorf("expected interval 16ms, got %v", cfg.Frame.Interval)
	}
	if cfg.Screenshot.Format != "webp" {
		t.Errorf("expected webp, got %s", cfg.Screenshot.Format)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "wirehouse.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "window:\n  width: not a number\n  invalid syntax here\n"},
		{"unknown key", "window:\n  fullscreen: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Window.Width != 1200 {
		t.Errorf("expected defaults, got width %d", cfg.Window.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"negative min zoom", func(c *Config) { c.Camera.MinZoom = -1 }, "min_zoom"},
		{"smoothing above one", func(c *Config) { c.Camera.Smoothing = 1.5 }, "smoothing"},
		{"zero focal", func(c *Config) { c.Render.FocalDistance = 0 }, "focal_distance"},
		{"zero limit", func(c *Config) { c.Render.OffscreenLimit = 0 }, "offscreen_limit"},
		{"zero interval", func(c *Config) { c.Frame.Interval = 0 }, "frame interval"},
		{"bad format", func(c *Config) { c.Screenshot.Format = "gif" }, "screenshot.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
	if !strings.Contains(strings.ToLower(dir), "wirehouse") {
		t.Errorf("ConfigDir should be app specific, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1600
				*flagHeight = 1000
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1600 || cfg.Window.Height != 1000 {
					t.Errorf("expected 1600x1000, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "screenshot format flag",
			setup: func() { *flagShotFmt = "tga" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Screenshot.Format != "tga" {
					t.Errorf("expected tga, got %s", cfg.Screenshot.Format)
				}
			},
			teardown: func() { *flagShotFmt = "" },
		},
		{
			name:  "no-hud flag",
			setup: func() { *flagNoHUD = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.ShowHUD {
					t.Error("expected HUD hidden")
				}
			},
			teardown: func() { *flagNoHUD = false },
		},
		{
			name:  "log-file flag",
			setup: func() { *flagLogFile = "run.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected run.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  smoothing: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject smoothing 0")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Title = "test"
	cfg.Frame.Interval = 20 * time.Millisecond
	cfg.Screenshot.Format = "tga"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestSaveIsFoundByLoad(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not relocatable on this OS")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := Default()
	cfg.Window.Title = "saved"
	cfg.Screenshot.Format = "webp"
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "wirehouse", "config.yaml"); path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Window.Title != "saved" || loaded.Screenshot.Format != "webp" {
		t.Errorf("Load did not pick up the saved file: %+v", loaded.Window)
	}
}
