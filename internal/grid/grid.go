// Package grid lays fixed-size panels over a frame.
package grid

import "github.com/ZacxDev/panel-splitter/pkg/types"

// Plan scans the frame of res row by row, stepping the panel origin by
// shift, and returns one job per panel that fits entirely inside the frame.
// Rows and columns are numbered from 1. OutputPath is left empty for the
// catalog to fill in.
//
// A panel larger than the frame yields an empty plan. Shift values that are
// not positive also yield an empty plan; config validation rejects them
// before this point.
func Plan(res types.Resolution, panel types.PanelSpec, shift types.ShiftSpec) []types.PanelJob {
	if shift.DX <= 0 || shift.DY <= 0 || panel.Width <= 0 || panel.Height <= 0 {
		return nil
	}

	jobs := make([]types.PanelJob, 0, Count(res, panel, shift))
	row := 1
	for y := 0; y+panel.Height <= res.Height; y += shift.DY {
		column := 1
		for x := 0; x+panel.Width <= res.Width; x += shift.DX {
			jobs = append(jobs, types.PanelJob{
				Resolution: res,
				Panel:      panel,
				Row:        row,
				Column:     column,
				OriginX:    x,
				OriginY:    y,
			})
			column++
		}
		row++
	}
	return jobs
}

// Count returns the number of panels Plan would produce without building them.
func Count(res types.Resolution, panel types.PanelSpec, shift types.ShiftSpec) int {
	return steps(res.Width, panel.Width, shift.DX) * steps(res.Height, panel.Height, shift.DY)
}

func steps(frame, size, shift int) int {
	if shift <= 0 || size <= 0 || size > frame {
		return 0
	}
	return (frame-size)/shift + 1
}
