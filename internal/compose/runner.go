package compose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-shellwords"

	"github.com/aniongithub/devcontainer-tools/internal/cmd"
	"github.com/aniongithub/devcontainer-tools/internal/descriptor"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// ShellVar names the env var holding the default shell for Run and Exec.
// Without it the descriptor's terminal profile is used, then /bin/sh.
const ShellVar = "DEVCONTAINER_SHELL"

const fallbackShell = "/bin/sh"

// ErrNotRunning is returned by Exec when the service has no container.
var ErrNotRunning = errors.New("devcontainer is not running (try: devcontainer start)")

// Exec runs external commands. The default implementation uses internal/cmd.
type Exec interface {
	// Interactive attaches the command to the terminal.
	Interactive(ctx context.Context, dir, name string, args ...string) error
	// Stream runs the command and forwards its output line by line.
	Stream(ctx context.Context, dir, name string, args ...string) error
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// Runner runs compose and docker commands against the live devcontainer.
type Runner struct {
	// Dir is the configuration directory holding the live files.
	Dir        string
	Descriptor *descriptor.Descriptor
	Env        vars.Mapping

	compose []string
	docker  string
	exec    Exec
}

// NewRunner splits composeCommand with shell quoting rules. An empty
// docker defaults to "docker".
func NewRunner(composeCommand, docker, dir string, d *descriptor.Descriptor, env vars.Mapping) (*Runner, error) {
	argv, err := shellwords.Parse(composeCommand)
	if err != nil {
		return nil, fmt.Errorf("parse compose command %q: %w", composeCommand, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("compose command is empty")
	}
	if d == nil {
		return nil, fmt.Errorf("no devcontainer descriptor")
	}
	if d.Service == "" {
		return nil, fmt.Errorf("devcontainer descriptor %q has no service", d.Name)
	}
	if docker == "" {
		docker = "docker"
	}
	return &Runner{
		Dir:        dir,
		Descriptor: d,
		Env:        env,
		compose:    argv,
		docker:     docker,
		exec:       cliExec{},
	}, nil
}

// WithExec replaces the command executor.
func (r *Runner) WithExec(e Exec) *Runner {
	r.exec = e
	return r
}

// Service is the compose service of the devcontainer.
func (r *Runner) Service() string {
	return r.Descriptor.Service
}

// Files returns the compose files as absolute paths.
func (r *Runner) Files() []string {
	var files []string
	for _, f := range r.Descriptor.ComposeFiles() {
		if !filepath.IsAbs(f) {
			f = filepath.Join(r.Dir, f)
		}
		files = append(files, f)
	}
	return files
}

// args prefixes sub with the compose command, compose files and env file.
func (r *Runner) args(sub ...string) (string, []string) {
	args := append([]string{}, r.compose[1:]...)
	for _, f := range r.Descriptor.ComposeFiles() {
		args = append(args, "-f", f)
	}
	if _, err := os.Stat(filepath.Join(r.Dir, ".env")); err == nil {
		args = append(args, "--env-file", ".env")
	}
	return r.compose[0], append(args, sub...)
}

func (r *Runner) shell() string {
	if s := r.Env[ShellVar]; s != "" {
		return s
	}
	if s := r.Descriptor.Shell(); s != "" {
		return s
	}
	return fallbackShell
}

// containerDir resolves workdir against the descriptor's workspace folder.
func (r *Runner) containerDir(workdir string) string {
	if path.IsAbs(workdir) {
		return workdir
	}
	base := r.Descriptor.WorkspaceFolder
	if base == "" {
		base = "/"
	}
	return path.Join(base, workdir)
}

// RunOptions configures Run.
type RunOptions struct {
	// Command defaults to the devcontainer shell.
	Command []string
	// Workdir is relative to the workspace folder unless absolute.
	Workdir string
}

// Run starts a one-off container of the service and removes it afterwards.
func (r *Runner) Run(ctx context.Context, opts RunOptions) error {
	command := opts.Command
	if len(command) == 0 {
		command = []string{r.shell()}
	}
	sub := []string{"run", "--rm", "-w", r.containerDir(opts.Workdir), r.Service()}
	name, args := r.args(append(sub, command...)...)
	return r.exec.Interactive(ctx, r.Dir, name, args...)
}

// StartOptions configures Start.
type StartOptions struct {
	Build bool
}

// Start creates the service container if needed and starts it.
func (r *Runner) Start(ctx context.Context, opts StartOptions) error {
	up := []string{"up"}
	if opts.Build {
		up = append(up, "--build")
	}
	up = append(up, "--no-start", r.Service())

	name, args := r.args(up...)
	if err := r.exec.Stream(ctx, r.Dir, name, args...); err != nil {
		return fmt.Errorf("create %s: %w", r.Service(), err)
	}
	name, args = r.args("start", r.Service())
	if err := r.exec.Stream(ctx, r.Dir, name, args...); err != nil {
		return fmt.Errorf("start %s: %w", r.Service(), err)
	}
	log.FromContext(ctx).Printf("Started %s\n", r.Service())
	return nil
}

// StopOptions configures Stop.
type StopOptions struct {
	// Timeout in seconds before the container is killed.
	Timeout int
}

// Stop stops the service container.
func (r *Runner) Stop(ctx context.Context, opts StopOptions) error {
	name, args := r.args("stop", "--timeout", strconv.Itoa(opts.Timeout), r.Service())
	if err := r.exec.Stream(ctx, r.Dir, name, args...); err != nil {
		return fmt.Errorf("stop %s: %w", r.Service(), err)
	}
	log.FromContext(ctx).Printf("Stopped %s\n", r.Service())
	return nil
}

// ContainerID returns the id of the service container, "" if none exists.
func (r *Runner) ContainerID(ctx context.Context) (string, error) {
	name, args := r.args("ps", "-q", r.Service())
	out, err := r.exec.Output(ctx, r.Dir, name, args...)
	if err != nil {
		return "", fmt.Errorf("find container of %s: %w", r.Service(), err)
	}
	lines := strings.Fields(string(out))
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}

// ExecOptions configures Exec.
type ExecOptions struct {
	// Command defaults to the devcontainer shell.
	Command []string
	// Workdir is relative to the workspace folder unless absolute.
	Workdir string
	// Detach runs the command in the background.
	Detach bool
}

// Exec runs a command inside the running service container.
func (r *Runner) Exec(ctx context.Context, opts ExecOptions) error {
	id, err := r.ContainerID(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return ErrNotRunning
	}

	command := opts.Command
	if len(command) == 0 {
		command = []string{r.shell()}
	}

	args := []string{"exec"}
	switch {
	case opts.Detach:
		args = append(args, "-d")
	case isatty.IsTerminal(os.Stdin.Fd()):
		args = append(args, "-it")
	default:
		args = append(args, "-i")
	}
	args = append(args, "-w", r.containerDir(opts.Workdir), id)
	args = append(args, command...)

	if opts.Detach {
		return r.exec.Stream(ctx, r.Dir, r.docker, args...)
	}
	return r.exec.Interactive(ctx, r.Dir, r.docker, args...)
}

// cliExec runs commands through internal/cmd, stdout to the logger and
// stderr to the process stderr.
type cliExec struct{}

func (cliExec) Interactive(ctx context.Context, dir, name string, args ...string) error {
	return cmd.InteractiveContext(ctx, dir, name, args...)
}

func (cliExec) Stream(ctx context.Context, dir, name string, args ...string) error {
	l := log.FromContext(ctx)
	return cmd.StreamContext(ctx, cmd.Stream{
		Dir:    dir,
		Stdout: func(line string) { l.Println(line) },
		Stderr: func(line string) { fmt.Fprintln(os.Stderr, line) },
	}, name, args...)
}

func (cliExec) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, dir, name, args...)
}
