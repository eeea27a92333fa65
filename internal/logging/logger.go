// Package logging builds the run logger and emits the per-file lifecycle
// events (skipped, started, succeeded, failed).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Options describes logger construction parameters.
type Options struct {
	Format  string // "console", "json" or "" to pick by terminal
	Verbose bool
	Writer  io.Writer
}

// New constructs a slog logger. Every record carries a run_id so events of
// concurrent runs writing to the same sink can be told apart.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "json"
		if isTerminal(w) {
			format = "console"
		}
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "console":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, errors.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(handler).With("run_id", uuid.NewString()), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
