package processor

import (
	"context"
	"os"

	"github.com/ZacxDev/panel-splitter/internal/logging"
	"github.com/ZacxDev/panel-splitter/pkg/types"
	"github.com/pkg/errors"
)

// TrimResult describes what the trim stage did.
type TrimResult struct {
	Path    string
	Skipped bool
}

// EnsureTrimmed produces target from source unless target already exists.
// Any failure is a *types.TranscodeError: no panel can be cut without the
// trimmed clip.
func EnsureTrimmed(ctx context.Context, tc Transcoder, events *logging.Events, source string, trim types.TrimSpec, target string) (TrimResult, error) {
	fail := func(err error) (TrimResult, error) {
		events.Emit(types.EventFailed, target, err)
		return TrimResult{Path: target}, &types.TranscodeError{Source: source, Target: target, Err: err}
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return fail(errors.New("target is a directory"))
	case err == nil:
		events.Emit(types.EventSkipped, target, nil)
		return TrimResult{Path: target, Skipped: true}, nil
	case !os.IsNotExist(err):
		return fail(errors.WithStack(err))
	}

	if _, err := os.Stat(source); err != nil {
		return fail(errors.Wrap(err, "source"))
	}

	events.Emit(types.EventStarted, target, nil)
	if err := tc.Trim(ctx, source, trim, target); err != nil {
		removePartial(target)
		return fail(err)
	}
	events.Emit(types.EventSucceeded, target, nil)
	return TrimResult{Path: target}, nil
}
