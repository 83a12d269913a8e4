package main

import (
	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
	"github.com/aniongithub/devcontainer-tools/internal/log"
)

func newDeactivateCmd() *cobra.Command {
	var (
		env          []string
		disableHooks bool
	)

	cmd := &cobra.Command{
		Use:     "deactivate",
		Short:   "Remove the live configuration",
		GroupID: GroupLifecycle,
		Args:    cobra.NoArgs,
		Long: `Remove the live files from .devcontainer.

Saved devcontainers in .devcontainer/<name> are never touched. The
pre-deactivate hook runs first; post-deactivate runs after the live files
are gone and is removed last. Does nothing if no devcontainer is live.`,
		Example: `  devcontainer deactivate
  devcontainer deactivate --disable-hooks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			vars, err := parseVars(env)
			if err != nil {
				return err
			}
			o, err := newOrchestrator(ctx)
			if err != nil {
				return err
			}
			res, err := o.Deactivate(ctx, lifecycle.DeactivateOptions{
				DisableHooks: hooksDisabled(ctx, disableHooks),
				Vars:         vars,
			})
			if err != nil {
				return err
			}
			log.FromContext(ctx).Debug("deactivated", "name", res.Name, "removed", len(res.Removed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&disableHooks, "disable-hooks", false, "Do not run hooks")
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "Set a hook variable (KEY=VALUE, KEY=- reads stdin)")

	return cmd
}
