// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings like "200ms", "6.5s", "1m", or from integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '200ms', '6.5s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default configuration values.
const (
	DefaultProcess      = "gnome-shell"
	DefaultAnchor       = "top-right"
	DefaultPollInterval = 200 * time.Millisecond
	DefaultReassertFor  = 6500 * time.Millisecond
)

// Config is the notishiftd configuration.
// Loaded from ~/.config/notishift/config.toml
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
}

// EngineConfig contains repositioning engine settings.
type EngineConfig struct {
	Anchor       string   `toml:"anchor"`        // "top-left", "middle-center", etc.; "top-right" = OS default
	Process      string   `toml:"process"`       // Notification process name in the accessibility tree
	PollInterval Duration `toml:"poll_interval"` // Overlay monitor tick interval
	ReassertFor  Duration `toml:"reassert_for"`  // Re-assertion window after each move
	DryRun       bool     `toml:"dry_run"`       // Log moves instead of applying them
}

// LogConfig contains logging settings.
type LogConfig struct {
	Debug bool `toml:"debug"` // Enable the debug log sink
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Anchor:       DefaultAnchor,
			Process:      DefaultProcess,
			PollInterval: Duration(DefaultPollInterval),
			ReassertFor:  Duration(DefaultReassertFor),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notishift", "config.toml")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Engine.PollInterval.Duration() <= 0 {
		cfg.Engine.PollInterval = Duration(DefaultPollInterval)
	}
	if cfg.Engine.ReassertFor.Duration() <= 0 {
		cfg.Engine.ReassertFor = Duration(DefaultReassertFor)
	}
	if cfg.Engine.Process == "" {
		cfg.Engine.Process = DefaultProcess
	}

	return cfg, nil
}
