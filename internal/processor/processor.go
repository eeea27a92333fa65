package processor

import (
	"context"
	"os"

	"github.com/ZacxDev/panel-splitter/internal/logging"
	"github.com/ZacxDev/panel-splitter/pkg/types"
)

// Transcoder performs the two external media operations of a run.
// *ffmpeg.Processor is the production implementation.
type Transcoder interface {
	Trim(ctx context.Context, source string, trim types.TrimSpec, target string) error
	Crop(ctx context.Context, trimmed string, job types.PanelJob) error
}

// Options controls how the conversion pipeline dispatches jobs.
type Options struct {
	// Concurrency is the batch size; values below 1 mean 1.
	Concurrency int

	// AbortOnFailure stops dispatching new batches once a job has failed.
	AbortOnFailure bool
}

// Pipeline drives the panel conversions of one catalog.
type Pipeline struct {
	transcoder Transcoder
	events     *logging.Events
	opts       Options
}

// NewPipeline creates a pipeline that reports through events.
func NewPipeline(transcoder Transcoder, events *logging.Events, opts Options) *Pipeline {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Pipeline{
		transcoder: transcoder,
		events:     events,
		opts:       opts,
	}
}

// PrepareDirs creates every directory in dirs. It is the filesystem side of
// a run and must complete before any job is dispatched.
func PrepareDirs(dirs []string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &types.ConfigError{Field: "output_dir", Value: dir, Reason: err.Error()}
		}
	}
	return nil
}

// removePartial drops whatever a failed invocation left at path so a later
// run does not mistake it for a finished file.
func removePartial(path string) {
	_ = os.Remove(path)
}
