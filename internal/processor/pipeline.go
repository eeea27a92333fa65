package processor

import (
	"context"
	"sync"
	"time"

	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/pkg/errors"
)

// Outcome is the result of one catalog job.
type Outcome struct {
	Job     types.PanelJob
	Status  types.EventKind // succeeded, failed or skipped
	Err     error
	Elapsed time.Duration
}

// RunAll cuts every job of jobs out of trimmed. Jobs run in batches of
// Concurrency; a batch is only started once every job of the previous one
// has finished. A failed job never stops its siblings. Unless
// AbortOnFailure is set, failures are only collected in the report.
//
// The returned error is a *types.PipelineError when dispatch stopped early,
// either on abort or because ctx was cancelled. The report is returned in
// both cases; jobs that were never dispatched are marked skipped.
func (p *Pipeline) RunAll(ctx context.Context, jobs types.Catalog, trimmed string) (*Report, error) {
	start := time.Now()
	report := &Report{Outcomes: make([]Outcome, len(jobs))}

	var stop error
	dispatched := 0
	for dispatched < len(jobs) {
		if err := ctx.Err(); err != nil {
			stop = errors.Wrap(err, "interrupted")
			break
		}

		end := dispatched + p.opts.Concurrency
		if end > len(jobs) {
			end = len(jobs)
		}
		p.runBatch(ctx, jobs, trimmed, dispatched, end, report.Outcomes)
		first := firstFailure(report.Outcomes[dispatched:end])
		dispatched = end

		if p.opts.AbortOnFailure && first != nil {
			stop = first.Err
			break
		}
	}

	for i := dispatched; i < len(jobs); i++ {
		report.Outcomes[i] = Outcome{Job: jobs[i], Status: types.EventSkipped}
		p.events.Emit(types.EventSkipped, jobs[i].OutputPath, nil)
	}

	report.tally()
	report.Elapsed = time.Since(start)

	if stop != nil {
		return report, &types.PipelineError{Cause: stop, Attempted: dispatched, Total: len(jobs)}
	}
	return report, nil
}

// runBatch runs jobs[from:to] concurrently and waits for all of them.
// Each goroutine writes only its own slot of outcomes.
func (p *Pipeline) runBatch(ctx context.Context, jobs types.Catalog, trimmed string, from, to int, outcomes []Outcome) {
	var wg sync.WaitGroup
	for i := from; i < to; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = p.runJob(ctx, jobs[i], trimmed)
		}(i)
	}
	wg.Wait()
}

func (p *Pipeline) runJob(ctx context.Context, job types.PanelJob, trimmed string) Outcome {
	start := time.Now()
	p.events.Emit(types.EventStarted, job.OutputPath, nil)

	if err := p.transcoder.Crop(ctx, trimmed, job); err != nil {
		removePartial(job.OutputPath)
		jobErr := &types.JobError{Job: job, Err: err}
		p.events.Emit(types.EventFailed, job.OutputPath, jobErr)
		return Outcome{Job: job, Status: types.EventFailed, Err: jobErr, Elapsed: time.Since(start)}
	}

	p.events.Emit(types.EventSucceeded, job.OutputPath, nil)
	return Outcome{Job: job, Status: types.EventSucceeded, Elapsed: time.Since(start)}
}

func firstFailure(outcomes []Outcome) *Outcome {
	for i := range outcomes {
		if outcomes[i].Status == types.EventFailed {
			return &outcomes[i]
		}
	}
	return nil
}
