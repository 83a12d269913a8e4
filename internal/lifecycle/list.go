package lifecycle

import (
	"context"
	"path/filepath"

	"github.com/aniongithub/devcontainer-tools/internal/descriptor"
	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Entry is one saved or live devcontainer.
type Entry struct {
	Name           string   `json:"name" yaml:"name"`
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	Active         bool     `json:"active" yaml:"active"`
	Service        string   `json:"service,omitempty" yaml:"service,omitempty"`
	ComposeFiles   []string `json:"compose_files,omitempty" yaml:"compose_files,omitempty"`
	ShutdownAction string   `json:"shutdown_action,omitempty" yaml:"shutdown_action,omitempty"`
	Path           string   `json:"path" yaml:"path"`
}

// List returns the saved instances that have a descriptor, followed by the
// live instance (marked Active) if any. Unreadable descriptors are logged
// and skipped.
func (o *Orchestrator) List(ctx context.Context) ([]Entry, error) {
	l := log.FromContext(ctx)
	p := o.Project

	names, err := p.InstanceNames()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, name := range names {
		dir := p.InstanceDir(name)
		path := filepath.Join(dir, descriptor.FileName)
		if !fileExists(path) {
			continue
		}
		d, err := descriptor.Load(path)
		if err != nil {
			l.Warn("skipping %s: %v", name, err)
			continue
		}
		env := envfile.LoadOrEmpty(ctx, filepath.Join(dir, EnvFileName))
		entries = append(entries, entry(name, dir, d, env))
	}

	if p.IsActive() {
		d, env, err := o.Live(ctx)
		if err != nil {
			l.Warn("skipping live devcontainer: %v", err)
			return entries, nil
		}
		e := entry(p.ActiveName(), p.ConfigDir, d, env)
		e.Active = true
		entries = append(entries, e)
	}
	return entries, nil
}

func entry(name, dir string, d *descriptor.Descriptor, env vars.Mapping) Entry {
	if name == "" {
		name = d.Name
	}
	return Entry{
		Name:           name,
		ID:             env[IDVar],
		Service:        d.Service,
		ComposeFiles:   d.ComposeFiles(),
		ShutdownAction: d.ShutdownAction,
		Path:           dir,
	}
}

// Templates returns the names of the available templates.
func (o *Orchestrator) Templates(ctx context.Context) ([]string, error) {
	return o.Project.TemplateNames()
}

// Live loads the live descriptor and env file.
func (o *Orchestrator) Live(ctx context.Context) (*descriptor.Descriptor, vars.Mapping, error) {
	p := o.Project
	if !p.IsActive() {
		return nil, nil, &InstanceNotFoundError{}
	}
	d, err := descriptor.Load(p.LiveDescriptor())
	if err != nil {
		return nil, nil, err
	}
	d.Active = true
	return d, envfile.LoadOrEmpty(ctx, p.LiveEnvFile()), nil
}
