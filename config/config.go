// Package config loads the preview server's process configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"xml-prettify/highlight"
	"xml-prettify/panel"
)

var ErrInvalid = errors.New("invalid config")

// Config is read from a TOML file, then overridden by environment.
type Config struct {
	Addr                 string  `toml:"addr"`
	PrefsFile            string  `toml:"prefs_file"`
	DefaultTheme         string  `toml:"default_theme"`
	SupporterProbability float64 `toml:"supporter_probability"`
	WatchPrefs           bool    `toml:"watch_prefs"`
	LogLevel             string  `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	prefs := "xmlpreview-prefs.json"
	if dir, err := os.UserConfigDir(); err == nil {
		prefs = filepath.Join(dir, "xml-prettify", "preferences.json")
	}
	return Config{
		Addr:                 ":8080",
		PrefsFile:            prefs,
		DefaultTheme:         highlight.DefaultTheme,
		SupporterProbability: panel.SupporterProbability,
		WatchPrefs:           true,
		LogLevel:             "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PORT and PREFS_FILE.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if prefs := getenv("PREFS_FILE"); prefs != "" {
		c.PrefsFile = prefs
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalid)
	}
	if c.PrefsFile == "" {
		return fmt.Errorf("%w: prefs_file is empty", ErrInvalid)
	}
	if c.SupporterProbability < 0 || c.SupporterProbability > 1 {
		return fmt.Errorf("%w: supporter_probability %v not in [0,1]", ErrInvalid, c.SupporterProbability)
	}
	if !highlight.IsTheme(c.DefaultTheme) {
		return fmt.Errorf("%w: unknown default_theme %q", ErrInvalid, c.DefaultTheme)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Logger builds the process logger for c.
func (c Config) Logger() *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
