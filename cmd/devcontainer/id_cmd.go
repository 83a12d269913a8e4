package main

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/output"
)

func newIDCmd() *cobra.Command {
	var copyID bool

	cmd := &cobra.Command{
		Use:     "id [name]",
		Short:   "Print the DEVCONTAINER_ID",
		GroupID: GroupUtility,
		Args:    cobra.MaximumNArgs(1),
		Long: `Print the DEVCONTAINER_ID of the live devcontainer, or of a saved one.

The id is generated once by init and kept across re-initialization, so it
can name volumes or caches that outlive a single container.`,
		Example: `  devcontainer id
  devcontainer id api --copy   # Copy to the clipboard`,
		ValidArgsFunction: completeInstances,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := newProject(ctx)
			if err != nil {
				return err
			}

			var env map[string]string
			if len(args) > 0 {
				dir := p.InstanceDir(args[0])
				env = envfile.LoadOrEmpty(ctx, filepath.Join(dir, lifecycle.EnvFileName))
				if env[lifecycle.IDVar] == "" {
					return &lifecycle.InstanceNotFoundError{Name: args[0]}
				}
			} else {
				if !p.IsActive() {
					return &lifecycle.InstanceNotFoundError{}
				}
				env = envfile.LoadOrEmpty(ctx, p.LiveEnvFile())
			}

			id := env[lifecycle.IDVar]
			if id == "" {
				return fmt.Errorf("%s is not set", lifecycle.IDVar)
			}
			output.FromContext(ctx).Println(id)

			if copyID {
				if err := clipboard.WriteAll(id); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				log.FromContext(ctx).Printf("Copied to clipboard\n")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyID, "copy", "c", false, "Copy the id to the clipboard")
	return cmd
}
