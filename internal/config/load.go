package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)
	cfg.normalize()

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TeamSphere")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TeamSphere")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "teamsphere")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "teamsphere")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize clamps values the renderer cannot use.
func (c *Config) normalize() {
	if c.Window.MaxDPR <= 0 {
		c.Window.MaxDPR = 1
	}
	if c.Menu.DiscSteps < 4 {
		c.Menu.DiscSteps = 4
	}
	if c.Menu.Subdivisions < 0 {
		c.Menu.Subdivisions = 0
	}
	if c.Atlas.CellSize <= 0 {
		c.Atlas.CellSize = 512
	}
	if c.Atlas.Concurrency <= 0 {
		c.Atlas.Concurrency = 1
	}
}
