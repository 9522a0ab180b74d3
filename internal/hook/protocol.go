// Package hook implements the Claude Code hook protocol for devrules:
// reading the stdin payload, dispatching it to registered handlers, and
// writing the decision to stdout.
package hook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type jsonProtocol struct{}

// NewProtocol returns the JSON stdin/stdout Protocol.
func NewProtocol() Protocol {
	return &jsonProtocol{}
}

// ReadInput reads r to EOF and decodes one JSON object. Empty, non-JSON
// and non-object payloads return ErrHookInvalidInput. Fields other than
// tool_input are filled only when they hold strings; a field of another
// type is left empty instead of rejecting the payload.
func (p *jsonProtocol) ReadInput(r io.Reader) (*HookInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrHookInvalidInput, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrHookInvalidInput)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHookInvalidInput, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrHookInvalidInput)
	}

	return &HookInput{
		SessionID:      stringField(fields, "session_id"),
		TranscriptPath: stringField(fields, "transcript_path"),
		CWD:            stringField(fields, "cwd"),
		PermissionMode: stringField(fields, "permission_mode"),
		HookEventName:  stringField(fields, "hook_event_name"),
		ToolName:       stringField(fields, "tool_name"),
		ToolInput:      fields["tool_input"],
		ToolUseID:      stringField(fields, "tool_use_id"),
	}, nil
}

// stringField returns fields[key] when it is a JSON string, else "".
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// WriteOutput writes output as a single JSON line. A nil output is the
// silent allow and writes nothing.
func (p *jsonProtocol) WriteOutput(w io.Writer, output *HookOutput) error {
	if output == nil {
		return nil
	}
	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal hook output: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write hook output: %w", err)
	}
	return nil
}
