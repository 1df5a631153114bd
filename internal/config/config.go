package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DatabasePath string `koanf:"database_path"` // empty means xdg data dir

	// Composite playback
	DefaultTotalSeconds float64 `koanf:"default_total_seconds"` // fallback scroll total (default: 100)

	// Scheduling
	TickMillis   int `koanf:"tick_millis"`   // wait-loop poll interval (default: 10)
	TargetRounds int `koanf:"target_rounds"` // -1 = loop forever (default)

	// Desktop notification on playback completion (default: true)
	Notifications *bool `koanf:"notifications"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in database_path
	if cfg.DatabasePath != "" {
		cfg.DatabasePath = expandPath(cfg.DatabasePath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/encore/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "encore", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DefaultTotal returns the composite fallback total with the default
// applied.
func (c *Config) DefaultTotal() time.Duration {
	if c.DefaultTotalSeconds <= 0 {
		return 100 * time.Second
	}
	return time.Duration(c.DefaultTotalSeconds * float64(time.Second))
}

// Tick returns the wait-loop poll interval with the default applied.
func (c *Config) Tick() time.Duration {
	if c.TickMillis <= 0 {
		return 10 * time.Millisecond
	}
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Rounds returns the target round count; zero or negative values mean
// loop forever.
func (c *Config) Rounds() int {
	if c.TargetRounds <= 0 {
		return -1
	}
	return c.TargetRounds
}

// NotificationsEnabled returns whether completion notifications are on.
func (c *Config) NotificationsEnabled() bool {
	if c.Notifications == nil {
		return true
	}
	return *c.Notifications
}
