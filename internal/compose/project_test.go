package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniongithub/devcontainer-tools/internal/descriptor"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

const composeYAML = `services:
  dev:
    image: ${DEV_IMAGE:-alpine}
    command: sleep infinity
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".devcontainer")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte(content), 0o644))
	return dir
}

func TestProjectName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		env     vars.Mapping
		want    string
	}{
		{
			name:    "directory name",
			content: composeYAML,
			want:    "devcontainer",
		},
		{
			name:    "name field",
			content: "name: My_App\n" + composeYAML,
			want:    "my_app",
		},
		{
			name:    "env wins",
			content: "name: other\n" + composeYAML,
			env:     vars.Mapping{"COMPOSE_PROJECT_NAME": "Demo.Project"},
			want:    "demoproject",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := writeProject(t, tt.content)
			d := &descriptor.Descriptor{Name: "x", Service: "dev"}
			r, err := NewRunner("docker compose", "", dir, d, tt.env)
			require.NoError(t, err)
			got, err := r.ProjectName(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckService(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, composeYAML)
	d := &descriptor.Descriptor{Service: "dev"}
	r, err := NewRunner("docker compose", "", dir, d, vars.Mapping{"DEV_IMAGE": "debian:12"})
	require.NoError(t, err)

	p, err := r.CheckService(context.Background())
	require.NoError(t, err)
	svc, err := p.GetService("dev")
	require.NoError(t, err)
	assert.Equal(t, "debian:12", svc.Image)

	d.Service = "missing"
	_, err = r.CheckService(context.Background())
	assert.Error(t, err)
}

func TestLoadProjectErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadProject(context.Background(), nil, nil, false)
	assert.Error(t, err)

	_, err = LoadProject(context.Background(), []string{filepath.Join(t.TempDir(), "nope.yml")}, nil, false)
	assert.ErrorContains(t, err, "read compose file")
}
