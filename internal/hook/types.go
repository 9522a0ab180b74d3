package hook

import (
	"context"
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/devrules/devrules/internal/config"
)

// DefaultHookTimeout is the default timeout for hook execution.
const DefaultHookTimeout = 10 * time.Second

// EventType represents a Claude Code hook event type.
type EventType string

const (
	// EventPreToolUse is triggered before a tool is executed.
	EventPreToolUse EventType = "PreToolUse"
)

// ValidEventTypes returns all event types devrules handles.
func ValidEventTypes() []EventType {
	return []EventType{EventPreToolUse}
}

// IsValidEventType checks if the given event type is valid.
func IsValidEventType(et EventType) bool {
	return slices.Contains(ValidEventTypes(), et)
}

// Permission decision constants for PreToolUse hooks (Claude Code protocol).
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
	DecisionAsk   = "ask"
)

// HookInput represents the JSON payload received from Claude Code via stdin.
// Every field is optional; the guard only needs tool_input.command.
type HookInput struct {
	SessionID      string          `json:"session_id,omitempty"`
	TranscriptPath string          `json:"transcript_path,omitempty"`
	CWD            string          `json:"cwd,omitempty"`
	PermissionMode string          `json:"permission_mode,omitempty"`
	HookEventName  string          `json:"hook_event_name,omitempty"`
	ToolName       string          `json:"tool_name,omitempty"`
	ToolInput      json.RawMessage `json:"tool_input,omitempty"`
	ToolUseID      string          `json:"tool_use_id,omitempty"`
}

// ShellToolInput is the tool_input shape of shell-executing tools. Only
// command is read; other keys are ignored whatever their type.
type ShellToolInput struct {
	Command json.RawMessage `json:"command"`
}

// Command returns tool_input.command, or "" when tool_input is not an
// object or command is missing or not a string.
func (in *HookInput) Command() string {
	if in == nil || len(in.ToolInput) == 0 {
		return ""
	}
	var ti ShellToolInput
	if err := json.Unmarshal(in.ToolInput, &ti); err != nil || len(ti.Command) == 0 {
		return ""
	}
	var cmd string
	if err := json.Unmarshal(ti.Command, &cmd); err != nil {
		return ""
	}
	return cmd
}

// HookSpecificOutput represents the hookSpecificOutput field for PreToolUse.
type HookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
}

// HookOutput represents the JSON payload written to stdout for Claude Code.
// A nil *HookOutput means "no opinion": nothing is written and the host
// proceeds with its default permission flow.
type HookOutput struct {
	HookSpecificOutput *HookSpecificOutput `json:"hookSpecificOutput,omitempty"`
}

// NewDenyOutput creates a HookOutput with permissionDecision "deny" for PreToolUse.
func NewDenyOutput(reason string) *HookOutput {
	return &HookOutput{
		HookSpecificOutput: &HookSpecificOutput{
			HookEventName:            string(EventPreToolUse),
			PermissionDecision:       DecisionDeny,
			PermissionDecisionReason: reason,
		},
	}
}

// IsDeny reports whether the output denies the tool call.
func (o *HookOutput) IsDeny() bool {
	return o != nil && o.HookSpecificOutput != nil &&
		o.HookSpecificOutput.PermissionDecision == DecisionDeny
}

// Reason returns the permission decision reason, if any.
func (o *HookOutput) Reason() string {
	if o == nil || o.HookSpecificOutput == nil {
		return ""
	}
	return o.HookSpecificOutput.PermissionDecisionReason
}

// Handler processes a specific hook event type.
type Handler interface {
	// Handle processes the hook input and returns output. A nil output
	// means the handler has no objection.
	Handle(ctx context.Context, input *HookInput) (*HookOutput, error)

	// EventType returns the event type this handler processes.
	EventType() EventType

	// Name identifies the handler in listings and logs.
	Name() string
}

// Registry manages handler registration and event dispatching.
type Registry interface {
	// Register adds a handler to the registry for its declared event type.
	Register(handler Handler)

	// Dispatch sends an event to all registered handlers for the given event
	// type. Handlers run sequentially; the first deny short-circuits the rest.
	Dispatch(ctx context.Context, event EventType, input *HookInput) (*HookOutput, error)

	// Handlers returns all handlers registered for the given event type.
	Handlers(event EventType) []Handler
}

// Protocol handles JSON communication with Claude Code via stdin/stdout.
type Protocol interface {
	// ReadInput reads and parses JSON from the given reader.
	ReadInput(r io.Reader) (*HookInput, error)

	// WriteOutput serializes the output as JSON to the given writer.
	// A nil output writes nothing.
	WriteOutput(w io.Writer, output *HookOutput) error
}

// ConfigProvider provides read access to application configuration.
// It is satisfied by *config.ConfigManager.
type ConfigProvider interface {
	Get() *config.Config
}
