// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Menu    MenuConfig    `yaml:"menu"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	Content ContentConfig `yaml:"content"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	MaxDPR     float32 `yaml:"max_dpr"`
}

// MenuConfig holds sphere layout and look.
type MenuConfig struct {
	DiscScale    float32    `yaml:"disc_scale"`
	DiscSteps    int        `yaml:"disc_steps"`
	Subdivisions int        `yaml:"subdivisions"`
	SphereRadius float32    `yaml:"sphere_radius"`
	ClearColor   [4]float32 `yaml:"clear_color"`
}

// AtlasConfig holds image atlas settings.
type AtlasConfig struct {
	CellSize      int           `yaml:"cell_size"`
	LoadTimeout   time.Duration `yaml:"load_timeout"`
	Concurrency   int           `yaml:"concurrency"`
	FallbackColor [4]uint8      `yaml:"fallback_color"`
}

// ContentConfig points at the team manifest.
type ContentConfig struct {
	File  string `yaml:"file"`
	Watch bool   `yaml:"watch"` // Rebuild the sphere when the file changes
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SFXVolume   float32 `yaml:"sfx_volume"`
	SelectSound string  `yaml:"select_sound"` // Optional WAV, a generated blip otherwise
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
			Title:      "Team",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MaxDPR:     2,
		},
		Menu: MenuConfig{
			DiscScale:    0.18,
			DiscSteps:    56,
			Subdivisions: 1,
			SphereRadius: 2,
			ClearColor:   [4]float32{0.98, 0.99, 1, 1},
		},
		Atlas: AtlasConfig{
			CellSize:      512,
			LoadTimeout:   5 * time.Second,
			Concurrency:   4,
			FallbackColor: [4]uint8{200, 205, 215, 255},
		},
		Content: ContentConfig{
			File:  "team.yaml",
			Watch: false,
		},
		Audio: AudioConfig{
			Enabled:   true,
			SFXVolume: 0.6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
