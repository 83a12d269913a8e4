// Package host determines the identity of the host user, which templates
// use to create a matching user inside the container.
package host

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aniongithub/devcontainer-tools/internal/cmd"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Variable names of the host identity.
const (
	UIDVar  = "HOST_USER_UID"
	GIDVar  = "HOST_USER_GID"
	NameVar = "HOST_USER_NAME"
)

// Identity is the host user.
type Identity struct {
	UID  string
	GID  string
	Name string
}

// Vars returns the identity as HOST_USER_* variables.
func (i Identity) Vars() vars.Mapping {
	return vars.Mapping{
		UIDVar:  i.UID,
		GIDVar:  i.GID,
		NameVar: i.Name,
	}
}

// MissingHostIdentityError is returned when running inside a container
// without the HOST_USER_* variables.
type MissingHostIdentityError struct {
	Missing []string
}

func (e *MissingHostIdentityError) Error() string {
	return fmt.Sprintf("running inside a container without host identity: set %s", strings.Join(e.Missing, ", "))
}

// Resolver looks up the host identity. The zero value uses the real
// process environment, filesystem and id(1).
type Resolver struct {
	// Env is the ambient environment (default: process environment).
	Env vars.Mapping
	// InContainer reports whether this process runs in a container.
	InContainer func() bool
	// Output runs a command and returns its stdout.
	Output func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Resolve returns the host identity.
//
// Inside a container all three HOST_USER_* variables must be set in the
// ambient environment. Otherwise uid and gid come from "id -u" and "id -g"
// and the name from $USER (falling back to "id -un").
func (r Resolver) Resolve(ctx context.Context) (Identity, error) {
	env := r.Env
	if env == nil {
		env = vars.HostEnv()
	}
	inContainer := r.InContainer
	if inContainer == nil {
		inContainer = InContainer
	}

	if inContainer() {
		var missing []string
		for _, k := range []string{UIDVar, GIDVar, NameVar} {
			if env[k] == "" {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return Identity{}, &MissingHostIdentityError{Missing: missing}
		}
		log.FromContext(ctx).Debug("using host identity from environment", "uid", env[UIDVar], "gid", env[GIDVar])
		return Identity{UID: env[UIDVar], GID: env[GIDVar], Name: env[NameVar]}, nil
	}

	uid, err := r.id(ctx, "-u")
	if err != nil {
		return Identity{}, err
	}
	gid, err := r.id(ctx, "-g")
	if err != nil {
		return Identity{}, err
	}
	name := env["USER"]
	if name == "" {
		if name, err = r.id(ctx, "-un"); err != nil {
			return Identity{}, err
		}
	}
	return Identity{UID: uid, GID: gid, Name: name}, nil
}

func (r Resolver) id(ctx context.Context, flag string) (string, error) {
	output := r.Output
	if output == nil {
		output = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return cmd.OutputContext(ctx, "", name, args...)
		}
	}
	out, err := output(ctx, "id", flag)
	if err != nil {
		return "", fmt.Errorf("id %s: %w", flag, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Paths probed by InContainer.
var (
	cgroupPath    = "/proc/1/cgroup"
	dockerEnvPath = "/.dockerenv"
)

// InContainer reports whether this process runs inside a docker container.
func InContainer() bool {
	return inContainer(cgroupPath, dockerEnvPath)
}

func inContainer(cgroup, dockerEnv string) bool {
	if data, err := os.ReadFile(cgroup); err == nil && strings.Contains(string(data), "/docker/") {
		return true
	}
	_, err := os.Stat(dockerEnv)
	return err == nil
}
