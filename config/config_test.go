package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xml-prettify/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xmlpreview.toml")
	data := `
addr = "127.0.0.1:9000"
prefs_file = "/tmp/prefs.json"
default_theme = "monokai"
supporter_probability = 0.25
watch_prefs = false
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := config.Config{
		Addr:                 "127.0.0.1:9000",
		PrefsFile:            "/tmp/prefs.json",
		DefaultTheme:         "monokai",
		SupporterProbability: 0.25,
		WatchPrefs:           false,
		LogLevel:             "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Fatalf("level = %v", level)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("addr = "), 0644)
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := config.Default()
	env := map[string]string{"PORT": "7777", "PREFS_FILE": "/data/prefs.json"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Addr != ":7777" || cfg.PrefsFile != "/data/prefs.json" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"probability": func(c *config.Config) { c.SupporterProbability = 1.5 },
		"theme":       func(c *config.Config) { c.DefaultTheme = "no-such-theme" },
		"level":       func(c *config.Config) { c.LogLevel = "loud" },
		"addr":        func(c *config.Config) { c.Addr = "" },
	}
	for name, mutate := range cases {
		cfg := config.Default()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, config.ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}
