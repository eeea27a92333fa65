// Package catalog flattens the panel grids of every configured resolution
// into one ordered list of conversion jobs bound to output files.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZacxDev/panel-splitter/internal/grid"
	"github.com/ZacxDev/panel-splitter/pkg/types"
	"golang.org/x/exp/slices"
	"golang.org/x/sys/unix"
)

// Options carries the catalog settings that are not part of the grid itself.
type Options struct {
	// Extension of every output file, without the dot
	Extension string

	// Fallback, when set, adds one fixed 1-1 panel at the origin of this
	// resolution after the grids, regardless of the shift.
	Fallback *types.Resolution
}

// Build plans every resolution in order and stamps each job with
// outputRoot/<code>/<row>-<column>.<ext>. It does not touch the filesystem
// beyond checking that outputRoot, if present, is a writable directory.
func Build(resolutions []types.Resolution, panel types.PanelSpec, shift types.ShiftSpec, outputRoot string, opts Options) (types.Catalog, error) {
	if err := checkOutputRoot(outputRoot); err != nil {
		return nil, err
	}
	if opts.Extension == "" {
		return nil, &types.ConfigError{Field: "output_format", Reason: "extension is required"}
	}

	codes := make([]string, 0, len(resolutions)+1)
	for _, res := range resolutions {
		codes = append(codes, res.Code)
	}
	if opts.Fallback != nil {
		codes = append(codes, opts.Fallback.Code)
	}
	if err := checkCodes(codes); err != nil {
		return nil, err
	}

	size := 0
	for _, res := range resolutions {
		size += grid.Count(res, panel, shift)
	}

	jobs := make(types.Catalog, 0, size+1)
	for _, res := range resolutions {
		for _, job := range grid.Plan(res, panel, shift) {
			job.OutputPath = OutputPath(outputRoot, job, opts.Extension)
			jobs = append(jobs, job)
		}
	}

	if opts.Fallback != nil {
		job, err := fallbackJob(*opts.Fallback, panel)
		if err != nil {
			return nil, err
		}
		job.OutputPath = OutputPath(outputRoot, job, opts.Extension)
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// OutputPath returns root/<code>/<row>-<column>.<ext> for job.
func OutputPath(root string, job types.PanelJob, ext string) string {
	return filepath.Join(root, job.Resolution.Code, fmt.Sprintf("%d-%d.%s", job.Row, job.Column, ext))
}

// Dirs returns the per-resolution directories that must exist before the
// catalog's jobs can be written, in catalog order.
func Dirs(outputRoot string, jobs types.Catalog) []string {
	codes := jobs.Codes()
	dirs := make([]string, 0, len(codes))
	for _, code := range codes {
		dirs = append(dirs, filepath.Join(outputRoot, code))
	}
	return dirs
}

func fallbackJob(res types.Resolution, panel types.PanelSpec) (types.PanelJob, error) {
	if panel.Width > res.Width || panel.Height > res.Height {
		return types.PanelJob{}, &types.ConfigError{
			Field:  "fallback_tier",
			Value:  res,
			Reason: fmt.Sprintf("panel %dx%d does not fit", panel.Width, panel.Height),
		}
	}
	return types.PanelJob{
		Resolution: res,
		Panel:      panel,
		Row:        1,
		Column:     1,
	}, nil
}

func checkCodes(codes []string) error {
	for i, code := range codes {
		if code == "" {
			return &types.ConfigError{Field: "displays", Reason: "resolution code is required"}
		}
		if slices.Index(codes[:i], code) >= 0 {
			return &types.ConfigError{
				Field:  "displays",
				Value:  code,
				Reason: "duplicate resolution code would collide on output paths",
			}
		}
	}
	return nil
}

func checkOutputRoot(root string) error {
	if root == "" {
		return &types.ConfigError{Field: "output_dir", Reason: "required"}
	}
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &types.ConfigError{Field: "output_dir", Value: root, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &types.ConfigError{Field: "output_dir", Value: root, Reason: "not a directory"}
	}
	if err := unix.Access(root, unix.W_OK|unix.X_OK); err != nil {
		return &types.ConfigError{Field: "output_dir", Value: root, Reason: fmt.Sprintf("not writable: %v", err)}
	}
	return nil
}
