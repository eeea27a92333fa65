package config

import (
	"github.com/ZacxDev/panel-splitter/pkg/types"
)

// Validate checks the run parameters. Every failure is a *types.ConfigError
// naming the offending field.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return &types.ConfigError{Field: "input", Reason: "required"}
	}
	if c.OutputDir == "" {
		return &types.ConfigError{Field: "output_dir", Reason: "required"}
	}
	if c.IntermediatePath == "" {
		return &types.ConfigError{Field: "intermediate", Reason: "required"}
	}
	if c.IntermediatePath == c.InputPath {
		return &types.ConfigError{Field: "intermediate", Value: c.IntermediatePath, Reason: "must differ from input"}
	}
	if c.OutputFormat == "" {
		return &types.ConfigError{Field: "output_format", Reason: "required"}
	}

	if c.Panel.Width <= 0 || c.Panel.Height <= 0 {
		return &types.ConfigError{Field: "panel", Value: c.Panel, Reason: "width and height must be positive"}
	}
	if c.Shift.DX <= 0 || c.Shift.DY <= 0 {
		return &types.ConfigError{Field: "shift", Value: c.Shift, Reason: "dx and dy must be positive"}
	}
	if c.Trim.SeekSeconds < 0 {
		return &types.ConfigError{Field: "trim.seek_seconds", Value: c.Trim.SeekSeconds, Reason: "must not be negative"}
	}
	if c.Trim.DurationSeconds <= 0 {
		return &types.ConfigError{Field: "trim.duration_seconds", Value: c.Trim.DurationSeconds, Reason: "must be positive"}
	}

	if c.Concurrency < 1 {
		return &types.ConfigError{Field: "concurrency", Value: c.Concurrency, Reason: "must be at least 1"}
	}
	if c.TimeoutSeconds < 0 {
		return &types.ConfigError{Field: "timeout_seconds", Value: c.TimeoutSeconds, Reason: "must not be negative"}
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return &types.ConfigError{Field: "log_format", Value: c.LogFormat, Reason: "supported: console, json"}
	}

	resolutions, err := c.Resolutions()
	if err != nil {
		return err
	}
	if len(resolutions) == 0 && c.FallbackTier == "" {
		return &types.ConfigError{Field: "tiers", Reason: "no display configured"}
	}
	for _, res := range resolutions {
		if res.Code == "" {
			return &types.ConfigError{Field: "displays", Value: res, Reason: "code is required"}
		}
		if res.Width <= 0 || res.Height <= 0 {
			return &types.ConfigError{Field: "displays", Value: res, Reason: "width and height must be positive"}
		}
	}
	if _, err := c.Fallback(); err != nil {
		return err
	}
	return nil
}
