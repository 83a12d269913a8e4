package main

import (
	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
	"github.com/aniongithub/devcontainer-tools/internal/log"
)

func newInitCmd() *cobra.Command {
	var (
		opts         lifecycle.InitOptions
		env          []string
		disableHooks bool
	)

	cmd := &cobra.Command{
		Use:     "init [template]",
		Short:   "Create a devcontainer from a template",
		GroupID: GroupLifecycle,
		Args:    cobra.MaximumNArgs(1),
		Long: `Create a saved devcontainer configuration from a template.

The template is copied into .devcontainer/<name>, replacing ${VAR}
placeholders with the identity variables (DEVCONTAINER_NAME, _ID, _CONTEXT,
_BASE_DOCKERFILE, _DEV_DOCKERFILE, _SHUTDOWN_ACTION, _SHELL,
_WORKSPACE_ROOT). Unknown placeholders are kept for activation.

Hooks: the template's pre-initialize hook runs before copying and the
instance's post-initialize hook after. Hooks may ask for values declared
as ${VAR?"prompt"}; pass them with -e to skip the prompt.

Existing files are kept unless --overwrite is given. Re-running init for
an existing name keeps its DEVCONTAINER_ID.`,
		Example: `  devcontainer init                      # Template "default"
  devcontainer init python -n api        # Save template "python" as "api"
  devcontainer init -s /bin/zsh -o       # Overwrite files, zsh as shell
  devcontainer init -e TOKEN=- < token   # Answer a hook prompt from stdin`,
		ValidArgsFunction: completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if len(args) > 0 {
				opts.Template = args[0]
			}
			defaults := config.FromContext(ctx).Defaults
			fill := func(dst *string, def string) {
				if *dst == "" {
					*dst = def
				}
			}
			fill(&opts.Template, defaults.Template)
			fill(&opts.ShutdownAction, defaults.ShutdownAction)
			fill(&opts.Shell, defaults.Shell)
			fill(&opts.Dockerfile, defaults.Dockerfile)
			fill(&opts.DevDockerfile, defaults.DevDockerfile)
			fill(&opts.WorkspaceRoot, defaults.WorkspaceRoot)

			if err := config.ValidateShutdownAction(opts.ShutdownAction); err != nil {
				return err
			}

			vars, err := parseVars(env)
			if err != nil {
				return err
			}
			opts.Vars = vars
			opts.DisableHooks = hooksDisabled(ctx, disableHooks)

			o, err := newOrchestrator(ctx)
			if err != nil {
				return err
			}
			res, err := o.Init(ctx, opts)
			if err != nil {
				return err
			}

			if n := len(res.Replication.Failures); n > 0 {
				l.Warn("%d files could not be copied, see above", n)
			}
			l.Debug("init done", "name", res.Name, "id", res.ID, "written", len(res.Replication.Written), "skipped", len(res.Replication.Skipped))
			l.Printf("Activate it with: devcontainer activate %s\n", res.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Name of the saved devcontainer (default: template name)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "Use this DEVCONTAINER_ID instead of generating one")
	cmd.Flags().StringVar(&opts.ShutdownAction, "shutdown-action", "", "Shutdown action: none, stopCompose or stopContainer")
	cmd.Flags().StringVarP(&opts.Shell, "shell", "s", "", "Shell used by run and exec")
	cmd.Flags().StringVarP(&opts.Dockerfile, "dockerfile", "d", "", "Base Dockerfile in the project directory")
	cmd.Flags().StringVar(&opts.DevDockerfile, "dev-dockerfile", "", "Dockerfile of the devcontainer image")
	cmd.Flags().StringVarP(&opts.WorkspaceRoot, "workspace-root", "w", "", "Workspace root relative to the project directory")
	cmd.Flags().BoolVarP(&opts.Overwrite, "overwrite", "o", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&disableHooks, "disable-hooks", false, "Do not run hooks")
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "Set a hook variable (KEY=VALUE, KEY=- reads stdin)")
	_ = cmd.Flags().MarkHidden("id")

	_ = cmd.RegisterFlagCompletionFunc("shutdown-action", cobra.FixedCompletions(config.ValidShutdownActions, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
