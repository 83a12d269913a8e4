package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/ui/prompt"
)

func newActivateCmd() *cobra.Command {
	var (
		opts         lifecycle.ActivateOptions
		env          []string
		disableHooks bool
	)

	cmd := &cobra.Command{
		Use:     "activate [name]",
		Short:   "Make a saved devcontainer the live configuration",
		Aliases: []string{"use"},
		GroupID: GroupLifecycle,
		Args:    cobra.MaximumNArgs(1),
		Long: `Render a saved devcontainer into .devcontainer.

Placeholders are resolved with the instance's .env plus the host user's
identity (HOST_USER_UID, HOST_USER_GID, HOST_USER_NAME). The merged values
are written to .devcontainer/.env for docker compose.

Live files you edited are kept; use --discard-changes to overwrite them
(see 'devcontainer diff'). If another devcontainer is live, activation
fails unless --discard-changes is given, which deactivates it first. In a
terminal you are asked whether to replace it instead.

Without a name, the only saved devcontainer is used, or a picker is shown
when running in a terminal.`,
		Example: `  devcontainer activate            # Pick interactively
  devcontainer activate api        # Activate "api"
  devcontainer activate api -d     # Replace live files and any other live devcontainer`,
		ValidArgsFunction: completeInstances,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			o, err := newOrchestrator(ctx)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				opts.Name = args[0]
			} else {
				name, err := pickInstance(ctx, o)
				if err != nil {
					return err
				}
				opts.Name = name
			}

			vars, err := parseVars(env)
			if err != nil {
				return err
			}
			opts.Vars = vars
			opts.DisableHooks = hooksDisabled(ctx, disableHooks)

			res, err := o.Activate(ctx, opts)
			if conflict := (*lifecycle.ActiveConflictError)(nil); errors.As(err, &conflict) && interactive() {
				replace, perr := prompt.Confirm(ctx, fmt.Sprintf("Devcontainer %q is active. Replace it with %q?", conflict.Active, conflict.Requested), false)
				if perr != nil {
					return perr
				}
				if !replace {
					return err
				}
				opts.DiscardChanges = true
				res, err = o.Activate(ctx, opts)
			}
			if err != nil {
				return err
			}
			if n := len(res.Replication.Skipped); n > 0 && !opts.DiscardChanges {
				l.Printf("Kept %d existing files (use --discard-changes to replace them)\n", n)
			}
			if n := len(res.Replication.Failures); n > 0 {
				l.Warn("%d files could not be copied, see above", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.DiscardChanges, "discard-changes", "d", false, "Overwrite live files and replace another live devcontainer")
	cmd.Flags().BoolVar(&disableHooks, "disable-hooks", false, "Do not run hooks")
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "Set a hook variable (KEY=VALUE, KEY=- reads stdin)")

	return cmd
}

// pickInstance chooses the instance to activate when no name was given.
func pickInstance(ctx context.Context, o *lifecycle.Orchestrator) (string, error) {
	names, err := o.Project.InstanceNames()
	if err != nil {
		return "", err
	}
	switch {
	case len(names) == 0:
		return "", fmt.Errorf("no saved devcontainers in %s (create one with: devcontainer init)", o.Project.ConfigDir)
	case len(names) == 1:
		return names[0], nil
	case !interactive():
		return "", fmt.Errorf("specify which devcontainer to activate: %s", strings.Join(names, ", "))
	}

	active := o.Project.ActiveName()
	options := make([]prompt.Option, 0, len(names))
	for _, n := range names {
		opt := prompt.Option{Title: n}
		if n == active {
			opt.Detail = "active"
		}
		options = append(options, opt)
	}
	res, err := prompt.Select(ctx, "Activate devcontainer", options)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", prompt.ErrCancelled
	}
	return res.Value, nil
}
