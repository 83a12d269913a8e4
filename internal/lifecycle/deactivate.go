package lifecycle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/hooks"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/replicate"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// DeactivateOptions configures Deactivate.
type DeactivateOptions struct {
	DisableHooks bool
	Vars         vars.Mapping
}

// DeactivateResult describes a deactivation. Name is empty when nothing was live.
type DeactivateResult struct {
	Name    string
	Removed []string // paths relative to the configuration folder
}

// Deactivate removes the live configuration. Without a live descriptor it
// does nothing.
func (o *Orchestrator) Deactivate(ctx context.Context, opts DeactivateOptions) (*DeactivateResult, error) {
	release, err := o.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return o.deactivate(ctx, opts)
}

func (o *Orchestrator) deactivate(ctx context.Context, opts DeactivateOptions) (*DeactivateResult, error) {
	l := log.FromContext(ctx)
	p := o.Project

	if !p.IsActive() {
		l.Debug("nothing to deactivate", "dir", p.ConfigDir)
		l.Println("No active devcontainer")
		return &DeactivateResult{}, nil
	}
	res := &DeactivateResult{Name: p.ActiveName()}

	templateEnv := envfile.LoadOrEmpty(ctx, p.LiveEnvFile())
	if err := o.runHook(ctx, p.ConfigDir, hooks.PreDeactivate, templateEnv, opts.Vars, opts.DisableHooks); err != nil {
		return nil, err
	}

	files, err := o.liveFiles(res.Name)
	if err != nil {
		return nil, err
	}

	post := hooks.Locate(p.ConfigDir, hooks.PostDeactivate)
	var retained, removed []string
	for _, f := range files {
		if retainedForPostDeactivate(f, post) {
			retained = append(retained, f)
			continue
		}
		if err := remove(f); err != nil {
			return nil, err
		}
		removed = append(removed, f)
		res.Removed = append(res.Removed, rel(p.ConfigDir, f))
	}
	o.pruneEmptyDirs(removed)

	if err := o.runHook(ctx, p.ConfigDir, hooks.PostDeactivate, templateEnv, opts.Vars, opts.DisableHooks); err != nil {
		return nil, err
	}

	for _, f := range retained {
		if err := remove(f); err != nil {
			return nil, err
		}
		res.Removed = append(res.Removed, rel(p.ConfigDir, f))
	}

	if res.Name != "" {
		l.Printf("Deactivated %s\n", res.Name)
	} else {
		l.Printf("Deactivated\n")
	}
	return res, nil
}

// retainedForPostDeactivate reports whether path survives the first
// deletion pass. Matching either the hook or its env file is enough.
func retainedForPostDeactivate(path string, post hooks.Hook) bool {
	return path == post.Path || path == post.EnvPath
}

// liveFiles returns the absolute paths of the live configuration: every
// top-level file of the configuration folder plus the nested files that
// mirror the active instance. Saved instances are never included.
func (o *Orchestrator) liveFiles(active string) ([]string, error) {
	p := o.Project
	entries, err := os.ReadDir(p.ConfigDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(p.ConfigDir, e.Name()))
	}

	if active == "" || !dirExists(p.InstanceDir(active)) {
		return files, nil
	}
	instances, err := p.InstanceNames()
	if err != nil {
		return nil, err
	}
	mirrored, err := replicate.List(p.InstanceDir(active), replicate.DefaultOptions())
	if err != nil {
		return nil, err
	}
	for _, r := range mirrored {
		top, _, nested := strings.Cut(r, "/")
		if !nested || slices.Contains(instances, top) {
			continue
		}
		path := filepath.Join(p.ConfigDir, filepath.FromSlash(r))
		if fileExists(path) {
			files = append(files, path)
		}
	}
	return files, nil
}

// pruneEmptyDirs removes directories left empty by deleting files, up to
// the configuration folder.
func (o *Orchestrator) pruneEmptyDirs(files []string) {
	root := o.Project.ConfigDir
	for _, f := range files {
		for dir := filepath.Dir(f); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
			if os.Remove(dir) != nil {
				break
			}
		}
	}
}

func remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(r)
}
