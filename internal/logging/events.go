package logging

import (
	"log/slog"

	"github.com/ZacxDev/panel-splitter/pkg/types"
)

// Events writes one structured record per output file transition.
type Events struct {
	log *slog.Logger
}

// NewEvents wraps log; a nil logger discards every event.
func NewEvents(log *slog.Logger) *Events {
	return &Events{log: log}
}

// Emit records kind for output. err is attached to failed events only.
func (e *Events) Emit(kind types.EventKind, output string, err error) {
	if e == nil || e.log == nil {
		return
	}
	attrs := []any{
		slog.String("event", string(kind)),
		slog.String("output", output),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	if kind == types.EventFailed {
		e.log.Error("panel", attrs...)
		return
	}
	e.log.Info("panel", attrs...)
}
