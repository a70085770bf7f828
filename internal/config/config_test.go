package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Window.MaxDPR != 2 {
		t.Errorf("expected max dpr 2, got %f", cfg.Window.MaxDPR)
	}

	if cfg.Menu.DiscScale != 0.18 {
		t.Errorf("expected disc scale 0.18, got %f", cfg.Menu.DiscScale)
	}
	if cfg.Menu.DiscSteps != 56 {
		t.Errorf("expected 56 disc steps, got %d", cfg.Menu.DiscSteps)
	}
	if cfg.Menu.Subdivisions != 1 {
		t.Errorf("expected 1 subdivision, got %d", cfg.Menu.Subdivisions)
	}
	if cfg.Menu.SphereRadius != 2 {
		t.Errorf("expected sphere radius 2, got %f", cfg.Menu.SphereRadius)
	}

	if cfg.Atlas.CellSize != 512 {
		t.Errorf("expected cell size 512, got %d", cfg.Atlas.CellSize)
	}
	if cfg.Atlas.LoadTimeout != 5*time.Second {
		t.Errorf("expected load timeout 5s, got %v", cfg.Atlas.LoadTimeout)
	}

	if cfg.Content.File != "team.yaml" {
		t.Errorf("expected content file team.yaml, got %s", cfg.Content.File)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "Crew"
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

menu:
  disc_scale: 0.25
  disc_steps: 32
  clear_color: [0, 0, 0, 1]

atlas:
  cell_size: 256
  load_timeout: 2s
  concurrency: 8

content:
  file: "crew.yaml"
  watch: true

audio:
  enabled: false
  sfx_volume: 0.3

logging:
  level: "debug"
  log_file: "sphere.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Crew" {
		t.Errorf("expected title Crew, got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Menu.DiscScale != 0.25 {
		t.Errorf("expected disc scale 0.25, got %f", cfg.Menu.DiscScale)
	}
	if cfg.Menu.DiscSteps != 32 {
		t.Errorf("expected 32 disc steps, got %d", cfg.Menu.DiscSteps)
	}
	if cfg.Menu.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("expected black clear color, got %v", cfg.Menu.ClearColor)
	}
	// Untouched keys keep their defaults
	if cfg.Menu.SphereRadius != 2 {
		t.Errorf("expected sphere radius 2, got %f", cfg.Menu.SphereRadius)
	}

	if cfg.Atlas.CellSize != 256 {
		t.Errorf("expected cell size 256, got %d", cfg.Atlas.CellSize)
	}
	if cfg.Atlas.LoadTimeout != 2*time.Second {
		t.Errorf("expected load timeout 2s, got %v", cfg.Atlas.LoadTimeout)
	}

	if cfg.Content.File != "crew.yaml" || !cfg.Content.Watch {
		t.Errorf("expected crew.yaml with watch, got %+v", cfg.Content)
	}
	if cfg.Audio.Enabled {
		t.Error("expected audio to be disabled")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "sphere.log" {
		t.Errorf("expected log file 'sphere.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
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
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)
	os.Chdir(tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
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
			name:  "items flag",
			setup: func() { *flagItems = "people.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Content.File != "people.yaml" {
					t.Errorf("expected content file people.yaml, got %s", cfg.Content.File)
				}
			},
			teardown: func() { *flagItems = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "watch flag",
			setup: func() { *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Content.Watch {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() { *flagWatch = false },
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio to be disabled with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
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
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
menu:
  disc_steps: 2
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

	// Width from flag, height from file
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
	if cfg.Menu.DiscSteps != 4 {
		t.Errorf("expected disc steps clamped to 4, got %d", cfg.Menu.DiscSteps)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Title = "Saved"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Window.Title != "Saved" {
		t.Errorf("expected title Saved, got %s", loaded.Window.Title)
	}
	if loaded.Atlas.LoadTimeout != cfg.Atlas.LoadTimeout {
		t.Errorf("expected load timeout %v, got %v", cfg.Atlas.LoadTimeout, loaded.Atlas.LoadTimeout)
	}
}
