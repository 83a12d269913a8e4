package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage devcontainer configuration.

Global config: ~/.config/devcontainer/config.toml (DEVCONTAINER_CONFIG overrides)
Local config:  .devcontainer.toml (in the project directory)`,
		Example: `  devcontainer config init          # Create default global config
  devcontainer config show          # Show effective config
  devcontainer config show --json   # As JSON`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  devcontainer config init      # Create global config
  devcontainer config init -f   # Overwrite existing config
  devcontainer config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if stdout {
				output.FromContext(ctx).Print(config.DefaultConfig())
				return nil
			}
			path, err := config.Init(force)
			if err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}
			log.FromContext(ctx).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration: the global config merged with the
project's .devcontainer.toml and environment overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			c := config.FromContext(ctx)

			if jsonOutput {
				return out.Encode(output.FormatJSON, c)
			}

			templates, err := c.TemplatesDirFor(templatesFlag)
			if err != nil {
				templates = err.Error()
			}
			path, _ := config.Path()
			out.Printf("# config file: %s\n# templates:   %s\n", path, templates)
			return out.Encode(output.FormatTOML, c)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
