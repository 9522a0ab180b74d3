package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/devrules/devrules/internal/guard"
)

func newGuardRegistry(cfg ConfigProvider) Registry {
	reg := NewRegistry()
	reg.Register(NewRemovalGuardHandler(cfg, guard.New()))
	return reg
}

func TestRun_Scenarios(t *testing.T) {
	t.Parallel()

	const denyLine = `{"hookSpecificOutput":{"hookEventName":"PreToolUse","permissionDecision":"deny","permissionDecisionReason":"blocked by conservative policy: destructive removal target"}}` + "\n"

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"rm -rf root", `{"tool_input":{"command":"rm -rf /"}}`, denyLine},
		{"ls root", `{"tool_input":{"command":"ls -la /"}}`, ""},
		{"rm -rf home", `{"tool_input":{"command":"rm -rf ~"}}`, denyLine},
		{"not json", `not json`, ""},
		{"tmp cache", `{"tool_input":{"command":"echo hi && rm -rf /tmp/cache"}}`, ""},
		{"empty input", ``, ""},
		{"missing field", `{"tool_name":"Bash"}`, ""},
		{"split flags limitation", `{"tool_input":{"command":"rm -r -f /"}}`, ""},
		{"build output", `{"tool_input":{"command":"rm -rf ./build-output"}}`, ""},
		{"description of another type", `{"tool_input":{"command":"rm -rf /","description":5}}`, denyLine},
		{"numeric session id", `{"session_id":7,"tool_input":{"command":"rm -rf /"}}`, denyLine},
		{"tool name array", `{"tool_name":["Bash"],"tool_input":{"command":"rm -rf /"}}`, denyLine},
		{"command of another type", `{"tool_input":{"command":["rm","-rf","/"]}}`, ""},
		{
			"full host payload",
			`{"session_id":"s","cwd":"/w","hook_event_name":"PreToolUse","tool_name":"Bash","tool_input":{"command":"cd /w && rm -rf $PWD"}}`,
			denyLine,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := newGuardRegistry(&mockConfigProvider{cfg: newTestConfig(true)})
			var out bytes.Buffer
			err := Run(context.Background(), NewProtocol(), reg, EventPreToolUse, strings.NewReader(tt.payload), &out)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("Run() wrote %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRun_DenyDocumentShape(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	reg := newGuardRegistry(nil)
	if err := Run(context.Background(), NewProtocol(), reg, EventPreToolUse,
		strings.NewReader(`{"tool_input":{"command":"rm -fr /"}}`), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	var doc map[string]map[string]string
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, out.String())
	}
	hso, ok := doc["hookSpecificOutput"]
	if !ok {
		t.Fatalf("missing hookSpecificOutput in %q", out.String())
	}
	if len(hso) != 3 {
		t.Errorf("hookSpecificOutput has %d fields, want 3: %v", len(hso), hso)
	}
	if hso["permissionDecision"] != DecisionDeny {
		t.Errorf("permissionDecision = %q, want %q", hso["permissionDecision"], DecisionDeny)
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	reg := newGuardRegistry(nil)
	payload := `{"tool_input":{"command":"rm -rf ."}}`

	var first, second bytes.Buffer
	for _, buf := range []*bytes.Buffer{&first, &second} {
		if err := Run(context.Background(), NewProtocol(), reg, EventPreToolUse, strings.NewReader(payload), buf); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	}
	if first.String() != second.String() || first.Len() == 0 {
		t.Errorf("outputs differ or empty: %q vs %q", first.String(), second.String())
	}
}

func TestRun_HandlerErrorFailsOpen(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&stubHandler{name: "broken", event: EventPreToolUse, err: errors.New("boom")})

	var out bytes.Buffer
	if err := Run(context.Background(), NewProtocol(), reg, EventPreToolUse,
		strings.NewReader(`{"tool_input":{"command":"rm -rf /"}}`), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Run() wrote %q after handler error, want nothing", out.String())
	}
}

func TestRun_WriteFailureReturnsNil(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), NewProtocol(), newGuardRegistry(nil), EventPreToolUse,
		strings.NewReader(`{"tool_input":{"command":"rm -rf /"}}`), failingWriter{})
	if err != nil {
		t.Errorf("Run() error = %v, want nil so the process still exits 0", err)
	}
}

func TestRun_LargePayloadReadToEnd(t *testing.T) {
	t.Parallel()

	padding := strings.Repeat("x", 9<<20)
	payload := `{"transcript_path":"` + padding + `","tool_input":{"command":"rm -rf / # ` + padding + `"}}`

	var out bytes.Buffer
	if err := Run(context.Background(), NewProtocol(), newGuardRegistry(nil), EventPreToolUse,
		strings.NewReader(payload), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(out.String(), `"permissionDecision":"deny"`) {
		t.Errorf("Run() on a %d-byte payload wrote %q, want a deny", len(payload), out.String())
	}
}

func TestRun_ReadFailureFailsOpen(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Run(context.Background(), NewProtocol(), newGuardRegistry(nil), EventPreToolUse,
		failingReader{}, &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Run() wrote %q, want nothing", out.String())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
