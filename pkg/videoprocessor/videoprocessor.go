package videoprocessor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/ZacxDev/panel-splitter/internal/catalog"
	"github.com/ZacxDev/panel-splitter/internal/config"
	"github.com/ZacxDev/panel-splitter/internal/display"
	"github.com/ZacxDev/panel-splitter/internal/ffmpeg"
	"github.com/ZacxDev/panel-splitter/internal/logging"
	"github.com/ZacxDev/panel-splitter/internal/processor"
	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/pkg/errors"
)

// ErrJobsFailed is returned by SplitPanels when panels failed and the
// config asks for that to fail the run.
var ErrJobsFailed = errors.New("panel conversions failed")

// SplitOptions injects the collaborators of a run. Zero values select the
// production ones.
type SplitOptions struct {
	// Runner executes ffmpeg; nil runs cfg.FFmpegPath as a subprocess
	Runner ffmpeg.Runner

	// Logger receives run and per-panel events; nil discards them
	Logger *slog.Logger

	// Stderr receives ffmpeg's own output when cfg.Verbose is set
	Stderr io.Writer
}

// GetSupportedTiers returns the built-in display tier codes
func GetSupportedTiers() []string {
	return display.Supported()
}

// PlanPanels builds the job catalog for cfg without running anything.
func PlanPanels(cfg *config.Config) (types.Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	resolutions, err := cfg.Resolutions()
	if err != nil {
		return nil, err
	}
	fallback, err := cfg.Fallback()
	if err != nil {
		return nil, err
	}
	return catalog.Build(resolutions, cfg.Panel, cfg.Shift, cfg.OutputDir, catalog.Options{
		Extension: cfg.OutputFormat,
		Fallback:  fallback,
	})
}

// CheckSource probes the master and verifies it is long enough for the
// configured trim.
func CheckSource(cfg *config.Config) (*ffmpeg.VideoMetadata, error) {
	meta, err := ffmpeg.Probe(cfg.InputPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if end := cfg.Trim.SeekSeconds + cfg.Trim.DurationSeconds; end > meta.Duration {
		return meta, &types.ConfigError{
			Field:  "trim",
			Value:  cfg.Trim,
			Reason: fmt.Sprintf("ends at %.2fs but %s is %.2fs long", end, cfg.InputPath, meta.Duration),
		}
	}
	return meta, nil
}

// SplitPanels runs a full split: plan the catalog, prepare the output
// directories, trim the master once, then cut every panel.
//
// Errors are a *types.ConfigError before any ffmpeg run, a
// *types.TranscodeError when the trim fails, a *types.PipelineError when the
// pipeline stops early, or ErrJobsFailed under cfg.FailOnJobError. The
// report is returned whenever the pipeline ran.
func SplitPanels(ctx context.Context, cfg *config.Config, opts SplitOptions) (*processor.Report, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	events := logging.NewEvents(log)

	jobs, err := PlanPanels(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("start",
		"input", cfg.InputPath,
		"output_dir", cfg.OutputDir,
		"panels", len(jobs),
		"displays", jobs.Codes(),
		"concurrency", cfg.Concurrency,
	)

	dirs := append(catalog.Dirs(cfg.OutputDir, jobs), filepath.Dir(cfg.IntermediatePath))
	if err := processor.PrepareDirs(dirs); err != nil {
		return nil, err
	}

	runner := opts.Runner
	if runner == nil {
		execRunner := ffmpeg.NewExecRunner(cfg.FFmpegPath, cfg.Timeout())
		if cfg.Verbose {
			execRunner.Stderr = opts.Stderr
		}
		runner = execRunner
	}
	transcoder := ffmpeg.NewProcessor(runner)

	trim, err := processor.EnsureTrimmed(ctx, transcoder, events, cfg.InputPath, cfg.Trim, cfg.IntermediatePath)
	if err != nil {
		return nil, err
	}

	pipeline := processor.NewPipeline(transcoder, events, processor.Options{
		Concurrency:    cfg.Concurrency,
		AbortOnFailure: cfg.AbortOnFailure,
	})
	report, err := pipeline.RunAll(ctx, jobs, trim.Path)
	report.TrimSkipped = trim.Skipped

	log.Info("done",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"elapsed", report.Elapsed.String(),
	)

	if err != nil {
		return report, err
	}
	if cfg.FailOnJobError && report.Failed > 0 {
		return report, errors.Wrapf(ErrJobsFailed, "%d of %d panels", report.Failed, len(jobs))
	}
	return report, nil
}
