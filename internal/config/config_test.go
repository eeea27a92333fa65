package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZacxDev/panel-splitter/internal/config"
	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Panel.Width != 480 || cfg.Panel.Height != 270 {
		t.Fatalf("unexpected panel %+v", cfg.Panel)
	}
	if cfg.Shift.DX != 480 || cfg.Shift.DY != 270 {
		t.Fatalf("unexpected shift %+v", cfg.Shift)
	}
	if cfg.Trim.SeekSeconds != 31 || cfg.Trim.DurationSeconds != 35 {
		t.Fatalf("unexpected trim %+v", cfg.Trim)
	}
	if cfg.Concurrency != 1 {
		t.Fatalf("expected sequential default, got %d", cfg.Concurrency)
	}
	if cfg.Timeout() != 0 {
		t.Fatalf("expected no timeout by default, got %s", cfg.Timeout())
	}

	res, err := cfg.Resolutions()
	if err != nil {
		t.Fatalf("Resolutions: %v", err)
	}
	if len(res) != 3 || res[0].Code != "8k" || res[2].Code != "2k" {
		t.Fatalf("unexpected resolutions %+v", res)
	}
	fb, err := cfg.Fallback()
	if err != nil || fb == nil || fb.Code != "hd" || fb.Width != 1280 {
		t.Fatalf("unexpected fallback %+v (err %v)", fb, err)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	custom := config.Default()
	custom.Displays = []types.Resolution{
		{Code: "wall", Width: 2000, Height: 1000},
	}
	custom.FallbackTier = ""
	custom.Concurrency = 4
	custom.TimeoutSeconds = 90
	custom.OutputFormat = ".MKV"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "splitter.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("expected concurrency 4, got %d", cfg.Concurrency)
	}
	if cfg.Timeout() != 90*time.Second {
		t.Fatalf("expected 90s timeout, got %s", cfg.Timeout())
	}
	if cfg.OutputFormat != "mkv" {
		t.Fatalf("expected normalized format mkv, got %q", cfg.OutputFormat)
	}
	res, err := cfg.Resolutions()
	if err != nil {
		t.Fatalf("Resolutions: %v", err)
	}
	if len(res) != 1 || res[0].Code != "wall" {
		t.Fatalf("explicit displays should replace tiers, got %+v", res)
	}
	if fb, _ := cfg.Fallback(); fb != nil {
		t.Fatalf("fallback should be disabled, got %+v", fb)
	}
}

func TestLoadDefersValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte("concurrency = 0\ntimeout_seconds = 0.5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Timeout() != 500*time.Millisecond {
		t.Fatalf("expected 500ms timeout, got %s", cfg.Timeout())
	}

	var cfgErr *types.ConfigError
	if err := cfg.Validate(); !errors.As(err, &cfgErr) || cfgErr.Field != "concurrency" {
		t.Fatalf("expected concurrency ConfigError, got %v", err)
	}
	cfg.Concurrency = 2
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate after fix: %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("panels = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*config.Config)
	}{
		{"zero panel", "panel", func(c *config.Config) { c.Panel.Width = 0 }},
		{"negative shift", "shift", func(c *config.Config) { c.Shift.DY = -1 }},
		{"negative seek", "trim.seek_seconds", func(c *config.Config) { c.Trim.SeekSeconds = -1 }},
		{"zero duration", "trim.duration_seconds", func(c *config.Config) { c.Trim.DurationSeconds = 0 }},
		{"zero concurrency", "concurrency", func(c *config.Config) { c.Concurrency = 0 }},
		{"negative timeout", "timeout_seconds", func(c *config.Config) { c.TimeoutSeconds = -5 }},
		{"missing input", "input", func(c *config.Config) { c.InputPath = "" }},
		{"intermediate is input", "intermediate", func(c *config.Config) { c.IntermediatePath = c.InputPath }},
		{"unknown tier", "tiers", func(c *config.Config) { c.Tiers = []string{"8k", "12k"} }},
		{"unknown fallback", "fallback_tier", func(c *config.Config) { c.FallbackTier = "sd" }},
		{"bad log format", "log_format", func(c *config.Config) { c.LogFormat = "xml" }},
		{"display without code", "displays", func(c *config.Config) {
			c.Displays = []types.Resolution{{Width: 100, Height: 100}}
		}},
		{"nothing to cut", "tiers", func(c *config.Config) { c.Tiers = nil; c.FallbackTier = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.edit(&cfg)
			err := cfg.Validate()
			var cfgErr *types.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q (%v)", tt.field, cfgErr.Field, err)
			}
		})
	}
}
