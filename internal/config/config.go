// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/twistview/internal/engine/surface"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig   `yaml:"window"`
	Surface surface.Params `yaml:"surface"`
	Debug   DebugConfig    `yaml:"debug"`
	Logging LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Twisted Surface",
			Width:      800,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Surface: surface.DefaultParams(),
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
