package main

import (
	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/output"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diff [name]",
		Short:   "Show live changes that activate --discard-changes would replace",
		GroupID: GroupUtility,
		Args:    cobra.MaximumNArgs(1),
		Long: `Compare the live files with a saved devcontainer rendered the way
activation renders it.

Without a name the live devcontainer's own instance is used. Prints a
unified diff; nothing is printed when the live files are unchanged.`,
		Example: `  devcontainer diff
  devcontainer diff python   # What activating "python" would change`,
		ValidArgsFunction: completeInstances,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var name string
			if len(args) > 0 {
				name = args[0]
			}
			o, err := newOrchestrator(ctx)
			if err != nil {
				return err
			}
			diff, err := o.Diff(ctx, name)
			if err != nil {
				return err
			}
			if diff == "" {
				log.FromContext(ctx).Println("No changes")
				return nil
			}
			output.FromContext(ctx).Print(diff)
			return nil
		},
	}
	return cmd
}
