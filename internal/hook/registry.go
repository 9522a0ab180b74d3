package hook

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// registry is the default implementation of the Registry interface.
// It manages handler registration and sequential event dispatch with
// deny short-circuit and timeout support.
type registry struct {
	handlers map[EventType][]Handler
	timeout  time.Duration
}

// NewRegistry creates a new Registry with DefaultHookTimeout.
func NewRegistry() Registry {
	return NewRegistryWithTimeout(DefaultHookTimeout)
}

// NewRegistryWithTimeout creates a new Registry with a custom timeout duration.
func NewRegistryWithTimeout(timeout time.Duration) Registry {
	return &registry{
		handlers: make(map[EventType][]Handler),
		timeout:  timeout,
	}
}

// Register adds a handler to the registry for its declared event type.
func (r *registry) Register(handler Handler) {
	event := handler.EventType()
	r.handlers[event] = append(r.handlers[event], handler)
	slog.Debug("handler registered",
		"event", string(event),
		"handler", handler.Name(),
		"handler_count", len(r.handlers[event]),
	)
}

// Dispatch sends an event to all registered handlers for the given event
// type. Handlers run sequentially within a timeout context. The first
// deny is returned immediately and remaining handlers are skipped. When no
// handler denies, Dispatch returns a nil output: the silent allow.
func (r *registry) Dispatch(ctx context.Context, event EventType, input *HookInput) (*HookOutput, error) {
	handlers := r.handlers[event]
	if len(handlers) == 0 {
		slog.Debug("no handlers registered for event", "event", string(event))
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for i, h := range handlers {
		slog.Debug("dispatching handler",
			"event", string(event),
			"handler", h.Name(),
			"handler_index", i,
			"handler_total", len(handlers),
		)

		output, err := h.Handle(ctx, input)

		if ctx.Err() != nil {
			slog.Error("hook execution timed out",
				"event", string(event),
				"handler", h.Name(),
				"timeout", r.timeout.String(),
			)
			return nil, fmt.Errorf("%w: %v", ErrHookTimeout, ctx.Err())
		}

		if err != nil {
			slog.Error("handler returned error",
				"event", string(event),
				"handler", h.Name(),
				"error", err.Error(),
			)
			return nil, fmt.Errorf("handler %s for event %s: %w", h.Name(), event, err)
		}

		if output.IsDeny() {
			slog.Info("handler denied action",
				"event", string(event),
				"handler", h.Name(),
				"reason", output.Reason(),
			)
			return output, nil
		}
	}

	return nil, nil
}

// Handlers returns all handlers registered for the given event type.
func (r *registry) Handlers(event EventType) []Handler {
	return r.handlers[event]
}
