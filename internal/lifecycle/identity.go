package lifecycle

import (
	"strings"

	"github.com/google/uuid"

	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Identity variables written into every instance.
const (
	NameVar           = "DEVCONTAINER_NAME"
	IDVar             = "DEVCONTAINER_ID"
	ContextVar        = "DEVCONTAINER_CONTEXT"
	BaseDockerfileVar = "DEVCONTAINER_BASE_DOCKERFILE"
	DevDockerfileVar  = "DEVCONTAINER_DEV_DOCKERFILE"
	ShutdownActionVar = "DEVCONTAINER_SHUTDOWN_ACTION"
	ShellVar          = "DEVCONTAINER_SHELL"
	WorkspaceRootVar  = "DEVCONTAINER_WORKSPACE_ROOT"
)

// NewID returns a fresh instance id: a random uuid without dashes.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func identityVars(o InitOptions, name, id, contextDir string) vars.Mapping {
	return vars.Mapping{
		NameVar:           name,
		IDVar:             id,
		ContextVar:        contextDir,
		BaseDockerfileVar: o.Dockerfile,
		DevDockerfileVar:  o.DevDockerfile,
		ShutdownActionVar: o.ShutdownAction,
		ShellVar:          o.Shell,
		WorkspaceRootVar:  o.WorkspaceRoot,
	}
}
