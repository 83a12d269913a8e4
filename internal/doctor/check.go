package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/aniongithub/devcontainer-tools/internal/compose"
	"github.com/aniongithub/devcontainer-tools/internal/descriptor"
	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/placeholder"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// checkTools verifies the executables and the engine.
func checkTools(ctx context.Context, env *Env, stats *Stats) []Issue {
	var issues []Issue

	argv, err := shellwords.Parse(env.Config.Compose.Command)
	if err != nil || len(argv) == 0 {
		issues = append(issues, Issue{
			Key:         "compose_command",
			Description: fmt.Sprintf("invalid compose command %q", env.Config.Compose.Command),
		})
	} else if _, err := env.lookPath(argv[0]); err != nil {
		issues = append(issues, Issue{
			Key:         argv[0],
			Description: "compose command not found in PATH",
		})
	} else if err := env.run(ctx, argv[0], append(argv[1:], "version")...); err != nil {
		issues = append(issues, Issue{
			Key:         env.Config.Compose.Command,
			Description: fmt.Sprintf("compose command does not work: %v", err),
		})
	} else {
		stats.ToolsOK++
	}

	if _, err := env.lookPath(env.Config.Compose.Docker); err != nil {
		issues = append(issues, Issue{
			Key:         env.Config.Compose.Docker,
			Description: "docker CLI not found in PATH (needed by exec)",
		})
	} else {
		stats.ToolsOK++
	}

	if env.Engine != nil {
		if _, err := env.Engine(ctx); err != nil {
			issues = append(issues, Issue{
				Key:         "engine",
				Description: err.Error(),
			})
		} else {
			stats.ToolsOK++
		}
	}
	return issues
}

// checkConfig verifies the config file and the templates directory.
func checkConfig(env *Env, stats *Stats) []Issue {
	var issues []Issue

	switch {
	case env.ConfigErr != nil:
		issues = append(issues, Issue{
			Key:         env.ConfigPath,
			Description: env.ConfigErr.Error(),
		})
	case env.ConfigPath != "" && !exists(env.ConfigPath):
		issues = append(issues, Issue{
			Key:         env.ConfigPath,
			Description: "no config file, using defaults",
			FixAction:   FixInitConfig,
		})
	default:
		stats.ConfigOK++
	}

	dir := env.Project.TemplatesDir
	names, err := env.Project.TemplateNames()
	switch {
	case err != nil:
		issues = append(issues, Issue{
			Key:         dir,
			Description: "templates directory not readable (set templates_dir or DEVCONTAINER_TEMPLATES)",
		})
	case len(names) == 0:
		issues = append(issues, Issue{
			Key:         dir,
			Description: "templates directory has no templates",
		})
	default:
		stats.ConfigOK++
	}
	return issues
}

// checkProject verifies saved devcontainers and the live configuration.
func checkProject(ctx context.Context, env *Env, stats *Stats) []Issue {
	var issues []Issue
	p := env.Project

	names, err := p.InstanceNames()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		issues = append(issues, Issue{Key: p.ConfigDir, Description: err.Error()})
	}
	for _, name := range names {
		path := filepath.Join(p.InstanceDir(name), descriptor.FileName)
		if !exists(path) {
			issues = append(issues, Issue{Key: name, Description: "saved devcontainer has no " + descriptor.FileName})
			continue
		}
		if _, err := descriptor.Load(path); err != nil {
			issues = append(issues, Issue{Key: name, Description: err.Error()})
			continue
		}
		stats.Instances++
		stats.ProjectOK++
	}

	if !p.IsActive() {
		if exists(p.LiveEnvFile()) {
			issues = append(issues, Issue{
				Key:         p.LiveEnvFile(),
				Description: "live .env without " + descriptor.FileName + " (interrupted deactivate?)",
				FixAction:   FixRemoveLiveEnv,
			})
		}
		return issues
	}
	stats.Live = true

	d, err := descriptor.Load(p.LiveDescriptor())
	if err != nil {
		return append(issues, Issue{Key: p.LiveDescriptor(), Description: err.Error()})
	}
	liveEnv := envfile.LoadOrEmpty(ctx, p.LiveEnvFile())
	r, err := compose.NewRunner(env.Config.Compose.Command, env.Config.Compose.Docker, p.ConfigDir, d, liveEnv)
	if err != nil {
		return append(issues, Issue{Key: p.LiveDescriptor(), Description: err.Error()})
	}
	if _, err := r.CheckService(ctx); err != nil {
		return append(issues, Issue{Key: "compose", Description: err.Error()})
	}
	stats.ProjectOK++

	known := vars.Merge(vars.HostEnv(), liveEnv)
	for _, file := range r.Files() {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		if missing := placeholder.Unresolved(string(data), known); len(missing) > 0 {
			issues = append(issues, Issue{
				Key:         filepath.Base(file),
				Description: "unset variables render empty: " + strings.Join(missing, ", "),
			})
		}
	}
	return issues
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
