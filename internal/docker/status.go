package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// Labels set by docker compose on service containers.
const (
	ProjectLabel = "com.docker.compose.project"
	ServiceLabel = "com.docker.compose.service"
)

// State is the coarse state of a service container.
type State string

const (
	Running    State = "running"
	Stopped    State = "stopped"
	NotCreated State = "not created"
)

// Status describes the container backing a compose service.
type Status struct {
	Project     string `json:"project" yaml:"project"`
	Service     string `json:"service" yaml:"service"`
	State       State  `json:"state" yaml:"state"`
	ContainerID string `json:"container_id,omitempty" yaml:"container_id,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	// Detail is the engine's human readable status ("Up 5 minutes").
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// API is the subset of the engine client used here.
type API interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Ping(ctx context.Context) (types.Ping, error)
}

// Client answers status queries against a Docker engine.
type Client struct {
	api API
}

// New connects using the standard DOCKER_HOST / DOCKER_* environment.
func New() (*Client, func() error, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, nil, fmt.Errorf("docker client: %w", err)
	}
	return &Client{api: cli}, cli.Close, nil
}

// NewWithAPI wraps an existing engine client.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// Ping reports the engine API version.
func (c *Client) Ping(ctx context.Context) (string, error) {
	p, err := c.api.Ping(ctx)
	if err != nil {
		return "", fmt.Errorf("docker engine unreachable: %w", err)
	}
	return p.APIVersion, nil
}

// Status finds the container of service in the compose project.
// When several containers match (scaled service, leftovers) a running one
// is preferred, then the most recently created.
func (c *Client) Status(ctx context.Context, project, service string) (Status, error) {
	st := Status{Project: project, Service: service, State: NotCreated}

	f := filters.NewArgs(
		filters.Arg("label", ProjectLabel+"="+project),
		filters.Arg("label", ServiceLabel+"="+service),
	)
	list, err := c.api.ContainerList(ctx, container.ListOptions{All: true, Filters: f})
	if err != nil {
		return st, fmt.Errorf("list containers of %s/%s: %w", project, service, err)
	}
	if len(list) == 0 {
		return st, nil
	}

	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := list[i].State == container.StateRunning, list[j].State == container.StateRunning
		if ri != rj {
			return ri
		}
		return list[i].Created > list[j].Created
	})

	ctr := list[0]
	st.ContainerID = ctr.ID
	st.Detail = ctr.Status
	if len(ctr.Names) > 0 {
		st.Name = strings.TrimPrefix(ctr.Names[0], "/")
	}
	if ctr.State == container.StateRunning {
		st.State = Running
	} else {
		st.State = Stopped
	}
	return st, nil
}
