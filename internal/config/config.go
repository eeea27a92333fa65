package config

import (
	"os"
	"strings"
	"time"

	"github.com/ZacxDev/panel-splitter/internal/display"
	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config holds every knob of a panel split run. It is built once and passed
// down explicitly; nothing reads it from package state.
type Config struct {
	InputPath        string `toml:"input"`
	OutputDir        string `toml:"output_dir"`
	IntermediatePath string `toml:"intermediate"`
	OutputFormat     string `toml:"output_format"` // container extension, e.g. "mp4"

	// Tiers names built-in display tiers; Displays, when set, replaces them
	// with explicit resolutions.
	Tiers        []string           `toml:"tiers"`
	Displays     []types.Resolution `toml:"displays"`
	FallbackTier string             `toml:"fallback_tier"` // "" disables the fallback panel

	Panel types.PanelSpec `toml:"panel"`
	Shift types.ShiftSpec `toml:"shift"`
	Trim  types.TrimSpec  `toml:"trim"`

	Concurrency    int     `toml:"concurrency"`
	TimeoutSeconds float64 `toml:"timeout_seconds"` // 0 = no per-invocation timeout
	AbortOnFailure bool    `toml:"abort_on_failure"`
	FailOnJobError bool    `toml:"fail_on_job_error"`
	FFmpegPath     string  `toml:"ffmpeg"`

	LogFormat string `toml:"log_format"` // "console", "json" or "" for auto
	Verbose   bool   `toml:"verbose"`
}

const (
	DefaultInputPath        = "static/videos/org8k.mkv"
	DefaultOutputDir        = "static/videos"
	DefaultIntermediatePath = "static/videos/tmp.mp4"
	DefaultOutputFormat     = "mp4"
	DefaultFFmpegPath       = "ffmpeg"

	DefaultPanelWidth  = 480
	DefaultPanelHeight = 270

	DefaultSeekSeconds     = 31
	DefaultDurationSeconds = 35
)

// Default returns the layout the video walls were originally cut with.
func Default() Config {
	return Config{
		InputPath:        DefaultInputPath,
		OutputDir:        DefaultOutputDir,
		IntermediatePath: DefaultIntermediatePath,
		OutputFormat:     DefaultOutputFormat,
		Tiers:            []string{"8k", "4k", "2k"},
		FallbackTier:     "hd",
		Panel:            types.PanelSpec{Width: DefaultPanelWidth, Height: DefaultPanelHeight},
		Shift:            types.ShiftSpec{DX: DefaultPanelWidth, DY: DefaultPanelHeight},
		Trim:             types.TrimSpec{SeekSeconds: DefaultSeekSeconds, DurationSeconds: DefaultDurationSeconds},
		Concurrency:      1,
		FFmpegPath:       DefaultFFmpegPath,
	}
}

// Load decodes the TOML file at path over Default. An empty path returns the
// defaults. The result is not validated: callers apply their overrides first,
// then call Normalize and Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open config")
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	cfg.Normalize()
	return &cfg, nil
}

// Normalize trims and lower-cases the free-form string settings.
func (c *Config) Normalize() {
	c.OutputFormat = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.OutputFormat)), ".")
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.FallbackTier = strings.TrimSpace(c.FallbackTier)
	if c.FFmpegPath == "" {
		c.FFmpegPath = DefaultFFmpegPath
	}
}

// Timeout returns the per-invocation ffmpeg timeout, zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// Resolutions returns the grid resolutions in configured order.
func (c *Config) Resolutions() ([]types.Resolution, error) {
	if len(c.Displays) > 0 {
		return c.Displays, nil
	}
	res, err := display.Resolve(c.Tiers)
	if err != nil {
		return nil, &types.ConfigError{Field: "tiers", Value: c.Tiers, Reason: err.Error()}
	}
	return res, nil
}

// Fallback returns the resolution cut as a single fixed panel, or nil.
func (c *Config) Fallback() (*types.Resolution, error) {
	if c.FallbackTier == "" {
		return nil, nil
	}
	tier, err := display.Get(c.FallbackTier)
	if err != nil {
		return nil, &types.ConfigError{Field: "fallback_tier", Value: c.FallbackTier, Reason: err.Error()}
	}
	res := tier.GetResolution()
	return &res, nil
}
