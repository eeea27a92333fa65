package processor

import (
	"fmt"
	"time"

	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report collects the outcome of every catalog job, in catalog order.
type Report struct {
	Outcomes    []Outcome
	Succeeded   int
	Failed      int
	Skipped     int
	TrimSkipped bool
	Elapsed     time.Duration
}

func (r *Report) tally() {
	r.Succeeded, r.Failed, r.Skipped = 0, 0, 0
	for _, o := range r.Outcomes {
		switch o.Status {
		case types.EventSucceeded:
			r.Succeeded++
		case types.EventFailed:
			r.Failed++
		default:
			r.Skipped++
		}
	}
}

// Failures returns the failed outcomes in catalog order.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == types.EventFailed {
			out = append(out, o)
		}
	}
	return out
}

// Render formats the summary counts, followed by one row per failed job.
func (r *Report) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Succeeded", "Failed", "Skipped", "Trim", "Elapsed"})
	trim := "created"
	if r.TrimSkipped {
		trim = "reused"
	}
	tw.AppendRow(table.Row{r.Succeeded, r.Failed, r.Skipped, trim, r.Elapsed.Round(time.Second).String()})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	out := tw.Render()

	failures := r.Failures()
	if len(failures) == 0 {
		return out
	}

	fw := table.NewWriter()
	fw.SetStyle(table.StyleRounded)
	fw.AppendHeader(table.Row{"Panel", "Output", "Error"})
	for _, o := range failures {
		fw.AppendRow(table.Row{o.Job.String(), o.Job.OutputPath, errorText(o.Err)})
	}
	return fmt.Sprintf("%s\n%s", out, fw.Render())
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
