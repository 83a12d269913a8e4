package lifecycle

import (
	"context"
	"fmt"

	"github.com/aniongithub/devcontainer-tools/internal/hooks"
	"github.com/aniongithub/devcontainer-tools/internal/host"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// IdentityResolver determines the host user.
type IdentityResolver interface {
	Resolve(ctx context.Context) (host.Identity, error)
}

// Orchestrator runs lifecycle transitions for one project.
type Orchestrator struct {
	Project  Project
	Hooks    *hooks.Executor
	Identity IdentityResolver
	// Lock serializes transitions across processes.
	Lock bool
	// WorkDir is the working directory of hooks ("" = current directory).
	WorkDir string
}

// acquire takes the project lock if enabled. The returned func releases it.
func (o *Orchestrator) acquire(ctx context.Context) (func(), error) {
	if !o.Lock {
		return func() {}, nil
	}
	path, err := LockPath(o.Project.Context)
	if err != nil {
		return nil, fmt.Errorf("lock: %w", err)
	}
	l := NewFileLock(path)
	if err := l.Lock(ctx); err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	log.FromContext(ctx).Debug("acquired lock", "path", path)
	return func() {
		if err := l.Unlock(); err != nil {
			log.FromContext(ctx).Warn("release lock %s: %v", path, err)
		}
	}, nil
}

// runHook runs the hook of slot in dir. hookEnv is defaults overridden by
// the slot's env file, overridden by extra; defaults are the base layer.
// Pre-initialize hooks live in the template, which is never written.
func (o *Orchestrator) runHook(ctx context.Context, dir string, slot hooks.Slot, defaults, extra vars.Mapping, disabled bool) error {
	if disabled {
		log.FromContext(ctx).Debug("hooks disabled", "slot", slot, "dir", dir)
		return nil
	}
	h := hooks.Locate(dir, slot)
	hookEnv, base := hooks.Env(ctx, h, defaults)
	vars.MergeInPlace(hookEnv, extra)

	e := o.Hooks
	if e == nil {
		e = &hooks.Executor{}
	}
	return e.Run(ctx, hooks.Invocation{
		Hook:   h,
		Env:    hookEnv,
		Base:   base,
		Dir:    o.WorkDir,
		Shared: slot == hooks.PreInitialize,
	})
}

func (o *Orchestrator) identity() IdentityResolver {
	if o.Identity == nil {
		return host.Resolver{}
	}
	return o.Identity
}
