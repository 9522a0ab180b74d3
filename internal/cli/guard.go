package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devrules/devrules/internal/guard"
	"github.com/devrules/devrules/internal/hook"
)

var guardCmd = &cobra.Command{
	Use:   "guard",
	Short: "Inspect the destructive-command guard",
}

func init() {
	rootCmd.AddCommand(guardCmd)

	checkCmd := &cobra.Command{
		Use:   "check [command...]",
		Short: "Classify a shell command the way the PreToolUse hook does",
		Long: `Classify a shell command the way the PreToolUse hook does.

Arguments are joined with single spaces. Everything after the first
argument is taken literally, so "devrules guard check rm -rf /" works.
With no arguments, each non-empty stdin line is classified.

Only a single flag cluster carrying both r and f, aimed at exactly /, ~, .
or $PWD, is denied. "rm -r -f /" and long flags are not recognized.`,
		Example: `  devrules guard check rm -rf /
  devrules guard check --json "cd /tmp && rm -rf ."
  history | devrules guard check`,
		RunE: runGuardCheck,
	}
	checkCmd.Flags().SetInterspersed(false)
	checkCmd.Flags().Bool("json", false, "print exactly what the hook would write")
	guardCmd.AddCommand(checkCmd)
}

func runGuardCheck(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	classifier := guard.Classifier(guard.New())
	if deps != nil && deps.Guard != nil {
		classifier = deps.Guard
	}

	if len(args) > 0 {
		return printVerdict(cmd.OutOrStdout(), classifier, strings.Join(args, " "), asJSON)
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		line, err := reader.ReadString('\n')
		if command := strings.TrimSpace(line); command != "" {
			if werr := printVerdict(cmd.OutOrStdout(), classifier, command, asJSON); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read commands: %w", err)
		}
	}
}

// printVerdict writes one classification. In JSON mode it writes the hook
// document for a deny and nothing for an allow.
func printVerdict(w io.Writer, classifier guard.Classifier, command string, asJSON bool) error {
	d := classifier.Classify(command)

	if asJSON {
		var output *hook.HookOutput
		if d.IsDenied() {
			output = hook.NewDenyOutput(d.Reason)
		}
		return hook.NewProtocol().WriteOutput(w, output)
	}

	styled := isTerminal(w)
	line := renderVerdict(styled, d.IsDenied()) + "  " + command
	if d.IsDenied() {
		detail := fmt.Sprintf("matched %q (target %s): %s", d.Match, d.Target, d.Reason)
		if styled {
			detail = cliMuted.Render(detail)
		}
		line += "\n    " + detail
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
