package ffmpeg

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Processor runs the two ffmpeg operations a split needs: trimming the
// master and cutting one panel out of the trimmed clip.
type Processor struct {
	runner Runner
}

// NewProcessor creates a new FFmpeg processor on top of runner
func NewProcessor(runner Runner) *Processor {
	return &Processor{runner: runner}
}

// Trim copies trim.DurationSeconds of video starting at trim.SeekSeconds
// from source into target. The video stream is not re-encoded and audio is
// dropped.
func (p *Processor) Trim(ctx context.Context, source string, trim types.TrimSpec, target string) error {
	if err := p.runner.Run(ctx, TrimArgs(source, trim, target)); err != nil {
		return errors.Wrapf(err, "trim %s", source)
	}
	return nil
}

// Crop scales trimmed to the job's resolution width, keeping the aspect
// ratio, and writes the job's panel to its output path.
func (p *Processor) Crop(ctx context.Context, trimmed string, job types.PanelJob) error {
	if err := p.runner.Run(ctx, CropArgs(trimmed, job)); err != nil {
		return errors.Wrapf(err, "crop %s", job)
	}
	return nil
}

// TrimArgs returns the ffmpeg arguments for the trim of source.
// Seeking happens on the input side so ffmpeg jumps straight to the
// keyframe instead of decoding up to it.
func TrimArgs(source string, trim types.TrimSpec, target string) []string {
	return ffmpeg.Input(source, ffmpeg.KwArgs{
		"ss": formatSeconds(trim.SeekSeconds),
	}).Output(target, ffmpeg.KwArgs{
		"t":      formatSeconds(trim.DurationSeconds),
		"vcodec": "copy",
		"an":     "",
	}).OverWriteOutput().GetArgs()
}

// CropArgs returns the ffmpeg arguments that produce job's panel from trimmed.
func CropArgs(trimmed string, job types.PanelJob) []string {
	return ffmpeg.Input(trimmed).Output(job.OutputPath, ffmpeg.KwArgs{
		"vf": CropFilter(job),
	}).OverWriteOutput().GetArgs()
}

// CropFilter returns the scale+crop filter chain for job.
func CropFilter(job types.PanelJob) string {
	return fmt.Sprintf("scale=%d:-1,crop=%d:%d:%d:%d",
		job.Resolution.Width,
		job.Panel.Width, job.Panel.Height,
		job.OriginX, job.OriginY,
	)
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
