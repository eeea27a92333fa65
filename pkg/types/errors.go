package types

import "fmt"

// ConfigError reports invalid or colliding layout parameters. It is raised
// before any subprocess runs.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid config %s=%v: %s", e.Field, e.Value, e.Reason)
}

// TranscodeError reports a failed trim of the master source. Nothing
// downstream can run without the intermediate file.
type TranscodeError struct {
	Source string
	Target string
	Err    error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("trim %s -> %s: %v", e.Source, e.Target, e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }

// JobError reports one failed panel conversion.
type JobError struct {
	Job PanelJob
	Err error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("panel %s -> %s: %v", e.Job, e.Job.OutputPath, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }

// PipelineError is returned when the pipeline stops early, either because
// abort-on-failure is set or because the run was interrupted.
type PipelineError struct {
	Cause     error
	Attempted int
	Total     int
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stopped after %d/%d jobs: %v", e.Attempted, e.Total, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }
