package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/docker"
	"github.com/aniongithub/devcontainer-tools/internal/doctor"
	"github.com/aniongithub/devcontainer-tools/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var (
		fix      bool
		noEngine bool
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose the tools, configuration and project devcontainer depends on.

Checks:
- compose command and docker CLI are in PATH
- Docker engine is reachable
- Config file loads and the templates directory has templates
- Saved devcontainers have a valid devcontainer.json
- The live compose project loads and defines the service`,
		Example: `  devcontainer doctor          # Check for issues
  devcontainer doctor --fix    # Auto-fix recoverable issues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := newProject(ctx)
			if err != nil {
				return err
			}
			path, _ := config.Path()

			env := &doctor.Env{
				Config:     config.FromContext(ctx),
				ConfigPath: path,
				ConfigErr:  configErr,
				Project:    p,
				Out:        output.FromContext(ctx).Writer(),
			}
			if !noEngine {
				env.Engine = pingEngine
			}

			issues, err := doctor.Run(ctx, env, fix)
			if err != nil {
				return err
			}
			if len(issues) > 0 && !fix {
				return fmt.Errorf("%d issues found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair recoverable issues")
	cmd.Flags().BoolVar(&noEngine, "no-engine", false, "Skip the Docker engine check")

	return cmd
}

func pingEngine(ctx context.Context) (string, error) {
	cli, closeClient, err := docker.New()
	if err != nil {
		return "", err
	}
	defer closeClient()
	return cli.Ping(ctx)
}
