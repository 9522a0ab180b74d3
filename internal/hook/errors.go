package hook

import "errors"

var (
	// ErrHookInvalidInput indicates the stdin payload is empty or not JSON.
	// Callers on the PreToolUse path treat it as "no opinion".
	ErrHookInvalidInput = errors.New("hook: invalid input")

	// ErrHookTimeout indicates a handler exceeded the registry timeout.
	ErrHookTimeout = errors.New("hook: execution timed out")
)
