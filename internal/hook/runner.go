package hook

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Run reads one payload from r, dispatches it for event and writes the
// decision to w.
//
// Run fails open and always returns nil: an unparseable payload, a
// handler error or a timeout produce no output, so the host proceeds as if
// no hook were installed. A failed write is logged.
func Run(ctx context.Context, p Protocol, reg Registry, event EventType, r io.Reader, w io.Writer) error {
	input, err := p.ReadInput(r)
	if err != nil {
		slog.Debug("ignoring hook payload",
			"event", string(event),
			"invalid_input", errors.Is(err, ErrHookInvalidInput),
			"error", err,
		)
		return nil
	}

	output, err := reg.Dispatch(ctx, event, input)
	if err != nil {
		slog.Warn("hook dispatch failed, allowing", "event", string(event), "error", err)
		return nil
	}

	if err := p.WriteOutput(w, output); err != nil {
		slog.Error("failed to write hook decision", "event", string(event), "error", err)
	}
	return nil
}
