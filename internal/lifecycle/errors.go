package lifecycle

import (
	"fmt"
	"strings"

	"github.com/aniongithub/devcontainer-tools/internal/host"
)

// TemplateNotFoundError is returned by Init for an unknown template.
type TemplateNotFoundError struct {
	Name        string
	SearchPath  string
	Suggestions []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in %s%s", e.Name, e.SearchPath, didYouMean(e.Suggestions))
}

// InstanceNotFoundError is returned for an unknown saved instance, or with
// an empty Name when no instance is active.
type InstanceNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *InstanceNotFoundError) Error() string {
	if e.Name == "" {
		return "no active devcontainer"
	}
	return fmt.Sprintf("no saved devcontainer named %q%s", e.Name, didYouMean(e.Suggestions))
}

// ActiveConflictError is returned by Activate when a different instance is live.
type ActiveConflictError struct {
	Active    string
	Requested string
}

func (e *ActiveConflictError) Error() string {
	return fmt.Sprintf("devcontainer %q is active: deactivate it first or use --discard-changes to replace it with %q",
		e.Active, e.Requested)
}

// MissingHostIdentityError is returned by Activate inside a container
// without HOST_USER_* variables.
type MissingHostIdentityError = host.MissingHostIdentityError

func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return " (did you mean " + strings.Join(suggestions, ", ") + "?)"
}
