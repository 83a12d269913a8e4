package lifecycle

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/hooks"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/replicate"
	"github.com/aniongithub/devcontainer-tools/internal/suggest"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// PlaceholderDockerfile is written when the context has no base Dockerfile.
const PlaceholderDockerfile = "FROM scratch\n# TODO: Install any dependencies or tools here ...\n"

// InitOptions configures Init. Empty fields take the defaults from package config.
type InitOptions struct {
	Template       string
	Name           string // default: Template
	ID             string // default: existing instance id, else a new one
	Overwrite      bool
	DisableHooks   bool
	ShutdownAction string
	Shell          string
	Dockerfile     string
	DevDockerfile  string
	WorkspaceRoot  string
	// Vars are added to every hook environment, binding tightest.
	Vars vars.Mapping
}

func (o *InitOptions) applyDefaults() {
	d := config.Default().Defaults
	set := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	set(&o.Template, d.Template)
	set(&o.Name, o.Template)
	set(&o.ShutdownAction, d.ShutdownAction)
	set(&o.Shell, d.Shell)
	set(&o.Dockerfile, d.Dockerfile)
	set(&o.DevDockerfile, d.DevDockerfile)
	set(&o.WorkspaceRoot, d.WorkspaceRoot)
}

// InitResult describes a created instance.
type InitResult struct {
	Name              string
	ID                string
	Dir               string
	DockerfileCreated bool
	Replication       replicate.Result
}

// Init creates (or refreshes) a saved instance from a template.
func (o *Orchestrator) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	opts.applyDefaults()
	if err := validName(opts.Name); err != nil {
		return nil, err
	}

	release, err := o.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	l := log.FromContext(ctx)
	p := o.Project

	templateDir := p.TemplateDir(opts.Template)
	if validName(opts.Template) != nil || !dirExists(templateDir) {
		names, _ := p.TemplateNames()
		return nil, &TemplateNotFoundError{
			Name:        opts.Template,
			SearchPath:  p.TemplatesDir,
			Suggestions: suggest.Names(opts.Template, names),
		}
	}
	l.Debug("found template", "name", opts.Template, "dir", templateDir)

	instanceDir := p.InstanceDir(opts.Name)
	instanceEnv := filepath.Join(instanceDir, EnvFileName)

	id := opts.ID
	if id == "" {
		if existing := envfile.LoadOrEmpty(ctx, instanceEnv); existing[IDVar] != "" {
			id = existing[IDVar]
			l.Debug("keeping instance id", "id", id)
		} else {
			id = NewID()
		}
	}
	identity := identityVars(opts, opts.Name, id, p.Context)

	res := &InitResult{Name: opts.Name, ID: id, Dir: instanceDir}

	dockerfile := filepath.Join(p.Context, opts.Dockerfile)
	if !fileExists(dockerfile) {
		l.Warn("no %s found in %s, creating a placeholder. Update it to install the prerequisites your build environment needs",
			opts.Dockerfile, p.Context)
		if err := os.MkdirAll(filepath.Dir(dockerfile), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(dockerfile, []byte(PlaceholderDockerfile), 0o644); err != nil {
			return nil, err
		}
		res.DockerfileCreated = true
	}

	templateEnv := vars.Merge(envfile.LoadOrEmpty(ctx, filepath.Join(templateDir, EnvFileName)), identity)
	if err := o.runHook(ctx, templateDir, hooks.PreInitialize, templateEnv, opts.Vars, opts.DisableHooks); err != nil {
		return nil, err
	}

	copyOpts := replicate.DefaultOptions()
	copyOpts.Overwrite = opts.Overwrite
	copyOpts.Transform = replicate.Substitution(identity, true, opts.Overwrite)
	result, err := replicate.CopyTree(ctx, templateDir, instanceDir, copyOpts)
	if err != nil {
		return nil, err
	}
	res.Replication = result

	if err := envfile.CreateOrMerge(identity, instanceEnv); err != nil {
		var cfe *envfile.ConfigFormatError
		if !errors.As(err, &cfe) {
			return nil, err
		}
		l.Warn("%v, rewriting %s from identity values", err, instanceEnv)
		if err := envfile.Write(identity, instanceEnv); err != nil {
			return nil, err
		}
	}

	instanceDefaults := envfile.LoadOrEmpty(ctx, instanceEnv)
	if err := o.runHook(ctx, instanceDir, hooks.PostInitialize, instanceDefaults, opts.Vars, opts.DisableHooks); err != nil {
		return nil, err
	}

	l.Printf("Initialized %s from template %s (%d files)\n", opts.Name, opts.Template, len(result.Written))
	return res, nil
}
