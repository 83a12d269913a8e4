package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/hooks"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/output"
	"github.com/aniongithub/devcontainer-tools/internal/ui/styles"
)

var (
	// Global flags
	verbose       bool
	quiet         bool
	contextFlag   string
	templatesFlag string
	noInput       bool

	// Shared state injected into commands
	cfg       *config.Config
	configErr error
	logCloser io.Closer
)

// Command group IDs for organizing help output
const (
	GroupLifecycle = "lifecycle"
	GroupContainer = "container"
	GroupUtility   = "utility"
	GroupConfig    = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devcontainer",
	Short: "Compose-based devcontainer templates for any project",
	Long: `devcontainer instantiates devcontainer templates into a project,
switches between saved configurations and drives the resulting
docker compose service.

Templates live in a templates directory. 'init' copies one into
.devcontainer/<name>, substituting ${VAR} placeholders; 'activate' renders
a saved instance into .devcontainer with the host user's identity so editors
and 'start', 'run' or 'exec' can use it.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}
		cmd.SetContext(setupContext(cmd.Context()))
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// setupContext attaches the logger, printer and effective config.
func setupContext(ctx context.Context) context.Context {
	logger := log.New(os.Stderr, verbose, quiet)

	if configErr != nil {
		logger.Warn("%v (using defaults)", configErr)
	}

	effective := cfg
	if dir, err := contextDir(); err == nil {
		local, err := config.LoadLocal(dir)
		if err != nil {
			logger.Warn("%v", err)
		} else if local != nil {
			effective = config.MergeLocal(cfg, local)
		}
	}

	if path := effective.LogPath(); path != "" {
		f := log.OpenFile(path, effective.Log.MaxSizeMB, effective.Log.MaxBackups)
		logCloser = f
		logger = logger.WithFile(f)
	}
	styles.Init(effective.Theme)

	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, output.NewTerminal(os.Stdout, os.Environ()))
	return config.WithConfig(ctx, effective)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		configErr = err
		loadedCfg = config.Default()
	}
	cfg = &loadedCfg

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	rootCmd.SetContext(ctx)

	err = rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "devcontainer:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode passes through the status of a failed container command and
// maps every other error to 1.
func exitCode(err error) int {
	var he *hooks.HookExecutionError
	if errors.As(err, &he) {
		return 1
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		return ee.ExitCode()
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.PersistentFlags().StringVarP(&contextFlag, "context", "C", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&templatesFlag, "templates", "", "Templates directory (flag > DEVCONTAINER_TEMPLATES > config > <executable dir>/templates)")

	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false, "Fail instead of prompting for hook variables")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupLifecycle, Title: "Lifecycle Commands:"},
		&cobra.Group{ID: GroupContainer, Title: "Container Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Lifecycle commands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newActivateCmd())
	rootCmd.AddCommand(newDeactivateCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newTemplatesCmd())

	// Container commands
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newExecCmd())

	// Utility commands
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newIDCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())
}
