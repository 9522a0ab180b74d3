package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/devrules/devrules/internal/hook"
)

// defaultHookCommand is the command registered in Claude Code settings.
const defaultHookCommand = "devrules hook pre-tool"

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Execute hook event handlers",
	Long:  "Execute Claude Code hook event handlers. Called by the hook configuration in .claude/settings.json.",
}

func init() {
	rootCmd.AddCommand(hookCmd)

	hookCmd.AddCommand(&cobra.Command{
		Use:   "pre-tool",
		Short: "Handle pre-tool-use event",
		Long: `Read a PreToolUse payload from stdin and deny recursive, forced removals
of /, ~, . and $PWD. Prints a deny decision on stdout, or nothing to allow.
Always exits 0; unparseable input is allowed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHookEvent(cmd, hook.EventPreToolUse)
		},
	})

	hookCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered hook handlers",
		Args:  cobra.NoArgs,
		RunE:  runHookList,
	})

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the Claude Code settings.json fragment that installs the hook",
		Args:  cobra.NoArgs,
		RunE:  runHookSettings,
	}
	settingsCmd.Flags().String("command", defaultHookCommand, "command Claude Code runs for PreToolUse")
	settingsCmd.Flags().String("matcher", "Bash", "tool name matcher")
	settingsCmd.Flags().Int("timeout", 5, "hook timeout in seconds")
	hookCmd.AddCommand(settingsCmd)
}

// runHookEvent dispatches a hook event by reading JSON from stdin and
// writing the decision to stdout. It always returns nil so the process
// exits 0.
func runHookEvent(cmd *cobra.Command, event hook.EventType) error {
	if deps == nil || deps.HookProtocol == nil || deps.HookRegistry == nil {
		slog.Warn("hook system not initialized, allowing", "event", string(event))
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	prev := slog.Default()
	slog.SetDefault(prev.With("request_id", uuid.NewString()))
	defer slog.SetDefault(prev)

	return hook.Run(ctx, deps.HookProtocol, deps.HookRegistry, event, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runHookList displays all registered hook handlers.
func runHookList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	styled := isTerminal(out)
	const title = "Registered Hook Handlers"

	if deps == nil || deps.HookRegistry == nil {
		_, _ = fmt.Fprintln(out, renderCard(styled, title, "Hook system not initialized."))
		return nil
	}

	var pairs []kvPair
	for _, event := range hook.ValidEventTypes() {
		for _, h := range deps.HookRegistry.Handlers(event) {
			pairs = append(pairs, kvPair{string(event), h.Name()})
		}
	}

	if len(pairs) == 0 {
		_, _ = fmt.Fprintln(out, renderCard(styled, title, "No handlers registered."))
		return nil
	}
	_, _ = fmt.Fprintln(out, renderCard(styled, title, renderKeyValueLines(styled, pairs)))
	return nil
}

// claudeSettings mirrors the subset of .claude/settings.json that
// registers hooks.
type claudeSettings struct {
	Hooks map[string][]hookMatcher `json:"hooks"`
}

type hookMatcher struct {
	Matcher string        `json:"matcher"`
	Hooks   []hookCommand `json:"hooks"`
}

type hookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// buildHookSettings returns the settings fragment for the PreToolUse hook.
func buildHookSettings(command, matcher string, timeout int) claudeSettings {
	return claudeSettings{
		Hooks: map[string][]hookMatcher{
			string(hook.EventPreToolUse): {{
				Matcher: matcher,
				Hooks:   []hookCommand{{Type: "command", Command: command, Timeout: timeout}},
			}},
		},
	}
}

func runHookSettings(cmd *cobra.Command, _ []string) error {
	command, _ := cmd.Flags().GetString("command")
	matcher, _ := cmd.Flags().GetString("matcher")
	timeout, _ := cmd.Flags().GetInt("timeout")
	if timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %d", timeout)
	}

	data, err := json.MarshalIndent(buildHookSettings(command, matcher, timeout), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
