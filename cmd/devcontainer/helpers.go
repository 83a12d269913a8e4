package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/aniongithub/devcontainer-tools/internal/compose"
	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/hooks"
	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
	"github.com/aniongithub/devcontainer-tools/internal/ui/prompt"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// contextDir returns the absolute project directory (-C or the working directory).
func contextDir() (string, error) {
	dir := contextFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	return filepath.Abs(dir)
}

// newProject resolves the project of the current invocation.
func newProject(ctx context.Context) (lifecycle.Project, error) {
	c := config.FromContext(ctx)
	dir, err := contextDir()
	if err != nil {
		return lifecycle.Project{}, err
	}
	templates, err := c.TemplatesDirFor(templatesFlag)
	if err != nil {
		return lifecycle.Project{}, fmt.Errorf("resolve templates dir: %w", err)
	}
	return lifecycle.NewProject(dir, c.Folder, templates)
}

// newOrchestrator wires the lifecycle engine from the effective config.
func newOrchestrator(ctx context.Context) (*lifecycle.Orchestrator, error) {
	c := config.FromContext(ctx)
	p, err := newProject(ctx)
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter = prompt.Disabled{}
	if !noInput {
		prompter = prompt.Auto()
	}

	return &lifecycle.Orchestrator{
		Project: p,
		Hooks: &hooks.Executor{
			Prompter:       prompter,
			Timeout:        c.Hooks.Timeout,
			PersistAnswers: c.Hooks.PersistAnswers,
		},
		Lock: true,
	}, nil
}

// interactive reports whether the user can answer prompts.
func interactive() bool {
	return !noInput && isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
}

// hooksDisabled combines the --disable-hooks flag with the config.
func hooksDisabled(ctx context.Context, flag bool) bool {
	return flag || config.FromContext(ctx).Hooks.Disabled
}

// parseVars parses -e KEY=VALUE flags. A value of "-" reads stdin.
func parseVars(entries []string) (vars.Mapping, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	return hooks.ParseEnvWithStdin(entries, os.Stdin)
}

// liveRunner returns a compose runner for the live devcontainer.
func liveRunner(ctx context.Context) (*compose.Runner, error) {
	o, err := newOrchestrator(ctx)
	if err != nil {
		return nil, err
	}
	d, env, err := o.Live(ctx)
	if err != nil {
		return nil, err
	}
	c := config.FromContext(ctx)
	return compose.NewRunner(c.Compose.Command, c.Compose.Docker, o.Project.ConfigDir, d, env)
}

// commandAfterDash returns the arguments after "--", or all args if there is none.
func commandAfterDash(argsLenAtDash int, args []string) []string {
	if argsLenAtDash < 0 {
		return args
	}
	return args[argsLenAtDash:]
}
