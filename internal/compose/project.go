package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/compose-spec/compose-go/v2/consts"
	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"

	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Project loads the compose files with compose-go. The environment used for
// interpolation is the process environment overridden by the live env.
//
// The project name follows the compose CLI: COMPOSE_PROJECT_NAME, then the
// top-level name of the compose files, then the directory of the first
// compose file.
func (r *Runner) Project(ctx context.Context, validate bool) (*types.Project, error) {
	files := r.Files()
	env := vars.Merge(vars.HostEnv(), r.Env)
	return LoadProject(ctx, files, env, validate)
}

// LoadProject loads and normalizes the compose project made of files.
func LoadProject(ctx context.Context, files []string, env vars.Mapping, validate bool) (*types.Project, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no compose files")
	}

	var configFiles []types.ConfigFile
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read compose file: %w", err)
		}
		configFiles = append(configFiles, types.ConfigFile{Filename: f, Content: data})
	}

	workingDir := filepath.Dir(files[0])
	details := types.ConfigDetails{
		WorkingDir:  workingDir,
		ConfigFiles: configFiles,
		Environment: types.Mapping(env.Clone()),
	}

	name, explicit := env[consts.ComposeProjectName], true
	if name == "" {
		name, explicit = filepath.Base(workingDir), false
	}

	project, err := loader.LoadWithContext(ctx, details, func(o *loader.Options) {
		o.SetProjectName(loader.NormalizeProjectName(name), explicit)
		o.SkipValidation = !validate
		o.SkipConsistencyCheck = !validate
		o.SkipResolveEnvironment = !validate
	})
	if err != nil {
		return nil, fmt.Errorf("load compose project: %w", err)
	}
	return project, nil
}

// ProjectName resolves the compose project name without validating the files.
func (r *Runner) ProjectName(ctx context.Context) (string, error) {
	p, err := r.Project(ctx, false)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// CheckService loads the project with validation and verifies it defines
// the devcontainer service.
func (r *Runner) CheckService(ctx context.Context) (*types.Project, error) {
	p, err := r.Project(ctx, true)
	if err != nil {
		return nil, err
	}
	if _, err := p.GetService(r.Service()); err != nil {
		return p, fmt.Errorf("compose project %s: %w", p.Name, err)
	}
	return p, nil
}
