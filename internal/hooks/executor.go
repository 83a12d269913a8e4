package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aniongithub/devcontainer-tools/internal/cmd"
	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/placeholder"
	"github.com/aniongithub/devcontainer-tools/internal/ui/prompt"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Executor runs hooks.
type Executor struct {
	// Prompter asks for required variables. nil refuses to prompt.
	Prompter prompt.Prompter
	// Stderr receives the hook's stderr lines (default os.Stderr).
	// Stdout lines go to the context logger.
	Stderr io.Writer
	// Host is the lowest environment layer (default: the process environment).
	Host vars.Mapping
	// Timeout bounds a single hook run. 0 = no limit.
	Timeout time.Duration
	// PersistAnswers saves prompted values to the hook's override env file.
	PersistAnswers bool
}

// Invocation describes one hook run.
type Invocation struct {
	Hook Hook
	// Env is the hook environment. Prompted answers are stored into it.
	Env vars.Mapping
	// Base is layered beneath Env.
	Base vars.Mapping
	// Dir is the working directory ("" = current directory).
	Dir string
	// ForceReEntry prompts even for variables already in Env.
	ForceReEntry bool
	// Shared marks a hook whose directory must not be written, such as a
	// template. Answers are never persisted for it.
	Shared bool
}

// Run executes the hook described by inv. A missing hook file is a no-op.
func (e *Executor) Run(ctx context.Context, inv Invocation) error {
	l := log.FromContext(ctx)

	info, err := os.Stat(inv.Hook.Path)
	if errors.Is(err, os.ErrNotExist) {
		l.Debug("no hook", "slot", inv.Hook.Slot, "path", inv.Hook.Path)
		return nil
	}
	if err != nil {
		return &HookExecutionError{Hook: inv.Hook, Err: err, ExitCode: -1}
	}
	if info.IsDir() {
		return &HookExecutionError{Hook: inv.Hook, Err: errors.New("is a directory"), ExitCode: -1}
	}
	if info.Mode().Perm()&0o111 == 0 {
		return &HookExecutionError{Hook: inv.Hook, Err: ErrNotExecutable, ExitCode: -1}
	}

	if inv.Env == nil {
		inv.Env = vars.Mapping{}
	}
	answers, err := e.collect(ctx, inv)
	if err != nil {
		return &HookExecutionError{Hook: inv.Hook, Err: err, ExitCode: -1}
	}
	if e.PersistAnswers && len(answers) > 0 && inv.Shared {
		l.Debug("not saving answers in shared hook directory", "path", inv.Hook.EnvPath)
	} else if e.PersistAnswers && len(answers) > 0 {
		if err := envfile.CreateOrUpdate(answers, inv.Hook.EnvPath); err != nil {
			l.Warn("could not save answers to %s: %v", inv.Hook.EnvPath, err)
		} else {
			l.Debug("saved hook answers", "path", inv.Hook.EnvPath, "count", len(answers))
		}
	}

	l.Printf("Running %s hook...\n", inv.Hook.Slot)
	if err := e.exec(ctx, inv); err != nil {
		return err
	}
	l.Debug("hook finished", "slot", inv.Hook.Slot)
	return nil
}

// collect prompts for the hook's required variables and stores the
// answers in inv.Env. Binary hooks are not scanned.
func (e *Executor) collect(ctx context.Context, inv Invocation) (vars.Mapping, error) {
	data, err := os.ReadFile(inv.Hook.Path)
	if err != nil {
		return nil, err
	}
	if placeholder.IsBinary(data) {
		return nil, nil
	}

	l := log.FromContext(ctx)
	answers := vars.Mapping{}
	for _, req := range placeholder.RequiredVariables(string(data)) {
		if inv.Env.Has(req.Name) && !inv.ForceReEntry {
			l.Debug("reusing hook variable", "slot", inv.Hook.Slot, "name", req.Name)
			continue
		}
		if e.Prompter == nil {
			return nil, fmt.Errorf("%s: %w", req.Name, prompt.ErrNonInteractive)
		}
		value, err := e.Prompter.Prompt(ctx, prompt.Request{
			Name:    req.Name,
			Message: req.Prompt,
			Secret:  prompt.LooksSecret(req.Name),
		})
		if err != nil {
			return nil, fmt.Errorf("prompt for %s: %w", req.Name, err)
		}
		inv.Env[req.Name] = value
		answers[req.Name] = value
	}
	return answers, nil
}

func (e *Executor) exec(ctx context.Context, inv Invocation) error {
	l := log.FromContext(ctx)

	runCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	host := e.Host
	if host == nil {
		host = vars.HostEnv()
	}
	stderr := e.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	err := cmd.StreamContext(runCtx, cmd.Stream{
		Dir:    inv.Dir,
		Env:    vars.Merge(host, inv.Base, inv.Env).Environ(),
		Stdout: func(line string) { l.Println(line) },
		Stderr: func(line string) {
			fmt.Fprintln(stderr, line)
			l.Record(slog.LevelWarn, line, "slot", inv.Hook.Slot, "stream", "stderr")
		},
	}, inv.Hook.Path)
	if err == nil {
		return nil
	}

	herr := &HookExecutionError{Hook: inv.Hook, Err: err, ExitCode: cmd.ExitCode(err)}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		herr.Err = fmt.Errorf("timed out after %s: %w", e.Timeout, err)
	}
	return herr
}
