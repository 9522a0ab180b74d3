package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/devrules/devrules/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize devrules configuration",
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .devrules/config.yaml",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file")
	configCmd.AddCommand(initCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if deps == nil || deps.Config == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	data, err := yaml.Marshal(deps.Config.Get())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	source := "defaults"
	if deps.Config.FromFile() {
		source = deps.Config.Path()
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	force, _ := cmd.Flags().GetBool("force")

	path := config.ResolvePath(deps.ProjectRoot)
	if err := config.Save(path, config.NewDefaultConfig(), force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return err
}
