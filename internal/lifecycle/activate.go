package lifecycle

import (
	"context"
	"path/filepath"

	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/hooks"
	"github.com/aniongithub/devcontainer-tools/internal/host"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/replicate"
	"github.com/aniongithub/devcontainer-tools/internal/suggest"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// ActivateOptions configures Activate.
type ActivateOptions struct {
	Name string
	// DiscardChanges overwrites live files the user edited and replaces a
	// different live instance.
	DiscardChanges bool
	DisableHooks   bool
	Vars           vars.Mapping
}

// ActivateResult describes an activation.
type ActivateResult struct {
	Name        string
	Replaced    string // previously live instance, if any
	Identity    host.Identity
	Replication replicate.Result
}

// Activate makes a saved instance the live configuration.
//
// Activating the live instance again is allowed. Without DiscardChanges
// files that already exist at the live location are left alone, so
// repeated activation keeps user edits.
func (o *Orchestrator) Activate(ctx context.Context, opts ActivateOptions) (*ActivateResult, error) {
	release, err := o.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	l := log.FromContext(ctx)
	p := o.Project

	instanceDir := p.InstanceDir(opts.Name)
	if validName(opts.Name) != nil || !dirExists(instanceDir) {
		names, _ := p.InstanceNames()
		return nil, &InstanceNotFoundError{Name: opts.Name, Suggestions: suggest.Names(opts.Name, names)}
	}

	res := &ActivateResult{Name: opts.Name}
	if active := p.ActiveName(); active != "" && active != opts.Name {
		if !opts.DiscardChanges {
			return nil, &ActiveConflictError{Active: active, Requested: opts.Name}
		}
		l.Printf("Deactivating %s...\n", active)
		if _, err := o.deactivate(ctx, DeactivateOptions{DisableHooks: opts.DisableHooks, Vars: opts.Vars}); err != nil {
			return nil, err
		}
		res.Replaced = active
	}

	templateEnv := envfile.LoadOrEmpty(ctx, filepath.Join(instanceDir, EnvFileName))
	if err := o.runHook(ctx, instanceDir, hooks.PreActivate, templateEnv, opts.Vars, opts.DisableHooks); err != nil {
		return nil, err
	}

	identity, err := o.identity().Resolve(ctx)
	if err != nil {
		return nil, err
	}
	res.Identity = identity
	mergedEnv := vars.Merge(templateEnv, identity.Vars())

	copyOpts := replicate.DefaultOptions()
	copyOpts.Overwrite = opts.DiscardChanges
	copyOpts.Transform = replicate.Substitution(mergedEnv, true, opts.DiscardChanges)
	result, err := replicate.CopyTree(ctx, instanceDir, p.ConfigDir, copyOpts)
	if err != nil {
		return nil, err
	}
	res.Replication = result
	if n := len(result.Skipped); n > 0 && !opts.DiscardChanges {
		l.Debug("kept existing live files", "count", n)
	}

	if err := envfile.Write(mergedEnv, p.LiveEnvFile()); err != nil {
		return nil, err
	}

	liveEnv := envfile.LoadOrEmpty(ctx, p.LiveEnvFile())
	if err := o.runHook(ctx, p.ConfigDir, hooks.PostActivate, liveEnv, opts.Vars, opts.DisableHooks); err != nil {
		return nil, err
	}

	l.Printf("Activated %s\n", opts.Name)
	return res, nil
}
