package types

import "fmt"

// Resolution is one target display class.
type Resolution struct {
	Code   string `toml:"code"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%s (%dx%d)", r.Code, r.Width, r.Height)
}

// PanelSpec is the crop size shared by every resolution
type PanelSpec struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ShiftSpec is the step between adjacent panel origins. It may differ from
// the panel size, which leaves gaps or makes panels overlap.
type ShiftSpec struct {
	DX int `toml:"dx"`
	DY int `toml:"dy"`
}

// TrimSpec selects the sub-clip taken from the master source.
type TrimSpec struct {
	SeekSeconds     float64 `toml:"seek_seconds"`
	DurationSeconds float64 `toml:"duration_seconds"`
}

// PanelJob is one crop of one resolution, written to OutputPath.
type PanelJob struct {
	Resolution Resolution
	Panel      PanelSpec
	Row        int
	Column     int
	OriginX    int
	OriginY    int
	OutputPath string
}

func (j PanelJob) String() string {
	return fmt.Sprintf("%s %d-%d @ %d,%d", j.Resolution.Code, j.Row, j.Column, j.OriginX, j.OriginY)
}

// Catalog is the ordered list of panel jobs: resolution order first, then
// row-major within a resolution.
type Catalog []PanelJob

// Codes returns the distinct resolution codes in catalog order.
func (c Catalog) Codes() []string {
	seen := make(map[string]bool)
	codes := make([]string, 0)
	for _, job := range c {
		if seen[job.Resolution.Code] {
			continue
		}
		seen[job.Resolution.Code] = true
		codes = append(codes, job.Resolution.Code)
	}
	return codes
}

// EventKind is the lifecycle event emitted for every output file.
type EventKind string

const (
	EventSkipped   EventKind = "skipped"
	EventStarted   EventKind = "started"
	EventSucceeded EventKind = "succeeded"
	EventFailed    EventKind = "failed"
)
