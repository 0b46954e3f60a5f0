package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagLogFile = flag.String("log-file", "", "Also write logs to this file")
	flagShotFmt = flag.String("screenshot-format", "", "Screenshot format: png, webp or tga")
	flagNoHUD   = flag.Bool("no-hud", false, "Hide the text overlay")
	flagSave    = flag.Bool("save-config", false, "Write the effective config to the user config dir")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagShotFmt != "" {
		cfg.Screenshot.Format = *flagShotFmt
	}
	if *flagNoHUD {
		cfg.Render.ShowHUD = false
	}
}
