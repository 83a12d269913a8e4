package hooks

import (
	"context"
	"path/filepath"

	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Slot identifies a lifecycle point that may have a hook.
type Slot string

const (
	PreInitialize  Slot = "pre-initialize"
	PostInitialize Slot = "post-initialize"
	PreActivate    Slot = "pre-activate"
	PostActivate   Slot = "post-activate"
	PreDeactivate  Slot = "pre-deactivate"
	PostDeactivate Slot = "post-deactivate"
)

// Slots lists all slots in lifecycle order.
var Slots = []Slot{PreInitialize, PostInitialize, PreActivate, PostActivate, PreDeactivate, PostDeactivate}

// EnvFileName returns the name of the slot's override env file.
func (s Slot) EnvFileName() string {
	return string(s) + ".env"
}

// Hook is the location of a slot's hook in one directory.
// The files may not exist.
type Hook struct {
	Slot    Slot
	Path    string
	EnvPath string
}

// Locate returns the hook for slot inside dir.
func Locate(dir string, slot Slot) Hook {
	return Hook{
		Slot:    slot,
		Path:    filepath.Join(dir, string(slot)),
		EnvPath: filepath.Join(dir, slot.EnvFileName()),
	}
}

// Env assembles the environment for h: hookEnv is defaults overridden by the
// hook's env file, base is defaults itself. A malformed override file is
// logged and treated as empty.
func Env(ctx context.Context, h Hook, defaults vars.Mapping) (hookEnv, base vars.Mapping) {
	override := envfile.LoadOrEmpty(ctx, h.EnvPath)
	return vars.Merge(defaults, override), defaults.Clone()
}
