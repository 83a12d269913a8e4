package main

import (
	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/compose"
	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/docker"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/output"
	"github.com/aniongithub/devcontainer-tools/internal/ui/static"
)

func newStartCmd() *cobra.Command {
	var opts compose.StartOptions

	cmd := &cobra.Command{
		Use:     "start",
		Short:   "Create and start the devcontainer service",
		GroupID: GroupContainer,
		Args:    cobra.NoArgs,
		Long: `Create the service container of the live devcontainer if needed and
start it in the background.

Runs 'compose up --no-start' followed by 'compose start' in .devcontainer.`,
		Example: `  devcontainer start
  devcontainer start --build   # Rebuild images first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := liveRunner(ctx)
			if err != nil {
				return err
			}
			return r.Start(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Build, "build", false, "Build images before starting")
	return cmd
}

func newStopCmd() *cobra.Command {
	var opts compose.StopOptions

	cmd := &cobra.Command{
		Use:     "stop",
		Short:   "Stop the devcontainer service",
		GroupID: GroupContainer,
		Args:    cobra.NoArgs,
		Example: `  devcontainer stop
  devcontainer stop --timeout 0   # Kill immediately`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("timeout") {
				opts.Timeout = config.FromContext(ctx).Compose.StopTimeout
			}
			r, err := liveRunner(ctx)
			if err != nil {
				return err
			}
			return r.Stop(ctx, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Timeout, "timeout", "t", config.DefaultStopTimeout, "Seconds to wait before killing the container")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the state of the devcontainer service",
		GroupID: GroupContainer,
		Args:    cobra.NoArgs,
		Long: `Show whether the service container of the live devcontainer is running.

The container is looked up through the Docker Engine API by the labels
docker compose sets, using the project name compose would use.`,
		Example: `  devcontainer status
  devcontainer status -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := liveRunner(ctx)
			if err != nil {
				return err
			}
			project, err := r.ProjectName(ctx)
			if err != nil {
				return err
			}

			cli, closeClient, err := docker.New()
			if err != nil {
				return err
			}
			defer closeClient()

			st, err := cli.Status(ctx, project, r.Service())
			if err != nil {
				return err
			}
			log.FromContext(ctx).Debug("status", "project", st.Project, "service", st.Service, "state", st.State)

			if f != output.FormatTable {
				return out.Encode(f, st)
			}
			out.Print(static.RenderTable(static.ContainerHeaders, [][]string{static.ContainerRow(st)}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json or yaml")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(output.Formats, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newRunCmd() *cobra.Command {
	var opts compose.RunOptions

	cmd := &cobra.Command{
		Use:     "run [-- command...]",
		Short:   "Run a command in a new devcontainer",
		GroupID: GroupContainer,
		Long: `Run a command in a one-off container of the service, removed on exit.

The working directory is the descriptor's workspaceFolder, or --workdir
relative to it. Without a command the devcontainer shell is started.`,
		Example: `  devcontainer run                 # Interactive shell
  devcontainer run -- make test
  devcontainer run -w src -- go test ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := liveRunner(ctx)
			if err != nil {
				return err
			}
			opts.Command = commandAfterDash(cmd.ArgsLenAtDash(), args)
			return r.Run(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Workdir, "workdir", "w", "", "Working directory relative to the workspace folder")
	return cmd
}

func newExecCmd() *cobra.Command {
	var opts compose.ExecOptions

	cmd := &cobra.Command{
		Use:     "exec [-- command...]",
		Short:   "Run a command in the running devcontainer",
		Aliases: []string{"x"},
		GroupID: GroupContainer,
		Long: `Run a command inside the running service container.

Attaches to the terminal unless --detach is given. Without a command the
devcontainer shell is started. Use 'devcontainer start' first.`,
		Example: `  devcontainer exec                       # Shell in the container
  devcontainer exec -d -- npm run watch   # Background process
  devcontainer exec -w web -- npm test`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := liveRunner(ctx)
			if err != nil {
				return err
			}
			opts.Command = commandAfterDash(cmd.ArgsLenAtDash(), args)
			return r.Exec(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Workdir, "workdir", "w", "", "Working directory relative to the workspace folder")
	cmd.Flags().BoolVarP(&opts.Detach, "detach", "d", false, "Run in the background")
	return cmd
}
