package hook

import (
	"context"
	"log/slog"

	"github.com/devrules/devrules/internal/guard"
)

// removalGuardHandler processes PreToolUse events with the
// destructive-removal classifier.
type removalGuardHandler struct {
	cfg        ConfigProvider
	classifier guard.Classifier
}

// NewRemovalGuardHandler creates the PreToolUse handler that denies
// recursive, forced removals of /, ~, . and $PWD. A nil cfg keeps the
// guard enabled; a nil classifier uses guard.New().
func NewRemovalGuardHandler(cfg ConfigProvider, classifier guard.Classifier) Handler {
	if classifier == nil {
		classifier = guard.New()
	}
	return &removalGuardHandler{cfg: cfg, classifier: classifier}
}

// EventType returns EventPreToolUse.
func (h *removalGuardHandler) EventType() EventType {
	return EventPreToolUse
}

// Name returns the handler name.
func (h *removalGuardHandler) Name() string {
	return "removal-guard"
}

// Handle classifies tool_input.command regardless of tool_name, since
// callers may omit it. It returns a deny output on a match and nil
// otherwise.
func (h *removalGuardHandler) Handle(_ context.Context, input *HookInput) (*HookOutput, error) {
	if !h.enabled() {
		slog.Debug("removal guard disabled by configuration")
		return nil, nil
	}

	decision := h.classifier.Classify(input.Command())
	if !decision.IsDenied() {
		return nil, nil
	}

	slog.Warn("destructive removal denied",
		"tool_name", input.ToolName,
		"session_id", input.SessionID,
		"match", decision.Match,
		"target", decision.Target,
	)
	return NewDenyOutput(decision.Reason), nil
}

func (h *removalGuardHandler) enabled() bool {
	if h.cfg == nil {
		return true
	}
	cfg := h.cfg.Get()
	return cfg == nil || cfg.Guard.Enabled
}
