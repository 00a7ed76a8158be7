package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "notebook"
	configFileName = "config.yaml"

	defaultBreakpoint     = 100
	defaultGap            = 1
	defaultResponseDelay  = 1500 * time.Millisecond
	defaultRecordingDelay = 500 * time.Millisecond
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config is the on-disk notebook configuration.
type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Chat    ChatConfig    `yaml:"chat"`
	Studio  StudioConfig  `yaml:"studio"`
	Sources SourcesConfig `yaml:"sources"`
}

// LayoutConfig controls the pane coordinator.
type LayoutConfig struct {
	// Breakpoint is the width in columns below which the tabbed layout is used.
	Breakpoint int `yaml:"breakpoint"`
	Gap        int `yaml:"gap"`
}

type ChatConfig struct {
	// ResponseDelay is the assistant's reply latency; 0 answers at once.
	ResponseDelay time.Duration `yaml:"response_delay"`
}

type StudioConfig struct {
	RecordingDelay time.Duration `yaml:"recording_delay"`
}

// SourcesConfig controls the document library.
type SourcesConfig struct {
	// WatchDir is a drop folder; files created there are imported. Empty disables it.
	WatchDir string `yaml:"watch_dir,omitempty"`
	CacheDir string `yaml:"cache_dir,omitempty"`
	// Seed loads the demo documents, notes and clips on start.
	Seed *bool `yaml:"seed,omitempty"`
}

// SeedEnabled reports whether demo content should be loaded.
func (s SourcesConfig) SeedEnabled() bool {
	return s.Seed == nil || *s.Seed
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Breakpoint: defaultBreakpoint,
			Gap:        defaultGap,
		},
		Chat:   ChatConfig{ResponseDelay: defaultResponseDelay},
		Studio: StudioConfig{RecordingDelay: defaultRecordingDelay},
	}
}

// GetConfigDir returns the notebook directory under the user config dir.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// expandPaths expands environment variables and a leading ~ in the
// sources paths.
func (c *Config) expandPaths() {
	c.Sources.WatchDir = expandPath(c.Sources.WatchDir)
	c.Sources.CacheDir = expandPath(c.Sources.CacheDir)
}

// Validate checks ranges.
func (c Config) Validate() error {
	if c.Layout.Breakpoint <= 0 {
		return fmt.Errorf("%w: layout.breakpoint must be positive, got %d", ErrInvalid, c.Layout.Breakpoint)
	}
	if c.Layout.Gap < 0 {
		return fmt.Errorf("%w: layout.gap must not be negative, got %d", ErrInvalid, c.Layout.Gap)
	}
	if c.Chat.ResponseDelay < 0 {
		return fmt.Errorf("%w: chat.response_delay must not be negative", ErrInvalid)
	}
	if c.Studio.RecordingDelay < 0 {
		return fmt.Errorf("%w: studio.recording_delay must not be negative", ErrInvalid)
	}
	return nil
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if path == "~" || (len(path) > 1 && path[:2] == "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}
