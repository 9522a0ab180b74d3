package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devrules/devrules/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "devrules",
	Short: "Engineering conventions and a destructive-command guard for AI coding assistants",
	Long: `devrules ships convention documents (TDD micro-commits, SOLID checklist,
commit-message format, coverage thresholds) for AI coding assistants, and a
Claude Code PreToolUse hook that denies recursive, forced removals of /, ~, .
and $PWD.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	defer deps.Close()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("devrules %s\n", version.GetVersion()))

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version, commit and build date",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "devrules %s\n", version.GetFullVersion())
		},
	})
}
