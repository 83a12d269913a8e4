package main

import (
	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/output"
	"github.com/aniongithub/devcontainer-tools/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "List saved and live devcontainers",
		Aliases: []string{"list"},
		GroupID: GroupLifecycle,
		Args:    cobra.NoArgs,
		Long: `List the saved devcontainers of the project and the live one.

The live devcontainer is marked as active. When nothing is live a
"(none)" row is shown in table output.`,
		Example: `  devcontainer ls
  devcontainer ls -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			o, err := newOrchestrator(ctx)
			if err != nil {
				return err
			}
			entries, err := o.List(ctx)
			if err != nil {
				return err
			}
			log.FromContext(ctx).Debug("listed devcontainers", "count", len(entries))

			if f != output.FormatTable {
				if entries == nil {
					entries = []lifecycle.Entry{}
				}
				return out.Encode(f, entries)
			}

			out.Print(static.RenderTable(static.InstanceHeaders, static.InstanceRows(entries)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json or yaml")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(output.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Short:   "List available templates",
		GroupID: GroupLifecycle,
		Args:    cobra.NoArgs,
		Long: `List the templates in the templates directory.

The templates directory is taken from --templates, DEVCONTAINER_TEMPLATES,
templates_dir in the config, or the "templates" directory next to the
executable, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			o, err := newOrchestrator(ctx)
			if err != nil {
				return err
			}
			names, err := o.Templates(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				log.FromContext(ctx).Printf("No templates found in %s\n", o.Project.TemplatesDir)
				return nil
			}
			for _, n := range names {
				out.Println(n)
			}
			return nil
		},
	}
	return cmd
}
