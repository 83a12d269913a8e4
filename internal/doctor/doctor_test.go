package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newEnv(t *testing.T) (*Env, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	templates := filepath.Join(root, "templates")
	write(t, filepath.Join(templates, "default", "devcontainer.json"), `{"service": "dev"}`)

	p, err := lifecycle.NewProject(filepath.Join(root, "proj"), ".devcontainer", templates)
	require.NoError(t, err)

	configPath := filepath.Join(root, "config.toml")
	write(t, configPath, "")

	c := config.Default()
	var out bytes.Buffer
	return &Env{
		Config:     &c,
		ConfigPath: configPath,
		Project:    p,
		Engine:     func(context.Context) (string, error) { return "1.47", nil },
		LookPath:   func(file string) (string, error) { return "/usr/bin/" + file, nil },
		Run:        func(context.Context, string, ...string) error { return nil },
		Out:        &out,
	}, &out
}

func TestRunHealthy(t *testing.T) {
	t.Parallel()

	env, out := newEnv(t)
	write(t, filepath.Join(env.Project.InstanceDir("default"), "devcontainer.json"), `{"service": "dev"}`)

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Contains(t, out.String(), "No issues found")
	assert.Contains(t, out.String(), "1 saved devcontainers valid")
}

func TestRunReportsMissingTools(t *testing.T) {
	t.Parallel()

	env, out := newEnv(t)
	env.LookPath = func(file string) (string, error) { return "", errors.New("not found") }
	env.Engine = func(context.Context) (string, error) { return "", errors.New("docker engine unreachable") }

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	for _, issue := range issues {
		assert.Equal(t, CategoryTools, issue.Category)
	}
	assert.Contains(t, out.String(), "Tool issues")
}

func TestRunComposeCommandBroken(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	var probed []string
	env.Run = func(_ context.Context, name string, args ...string) error {
		probed = append(append(probed, name), args...)
		return errors.New("docker: 'compose' is not a docker command")
	}

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "docker compose", issues[0].Key)
	assert.Contains(t, issues[0].Description, "not a docker command")
	assert.Equal(t, []string{"docker", "compose", "version"}, probed)
}

func TestRunTemplatesMissing(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	env.Project.TemplatesDir = filepath.Join(t.TempDir(), "missing")

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, CategoryConfig, issues[0].Category)
	assert.Equal(t, FixNone, issues[0].FixAction)
}

func TestRunInvalidDescriptor(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	write(t, filepath.Join(env.Project.InstanceDir("broken"), "devcontainer.json"), `{"service": `)
	write(t, filepath.Join(env.Project.InstanceDir("noDescriptor"), ".env"), "A=1\n")

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "broken", issues[0].Key)
	assert.Equal(t, "noDescriptor", issues[1].Key)
}

func TestRunFixesOrphanLiveEnv(t *testing.T) {
	t.Parallel()

	env, out := newEnv(t)
	live := env.Project.LiveEnvFile()
	write(t, live, "DEVCONTAINER_NAME=default\n")

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, FixRemoveLiveEnv, issues[0].FixAction)
	assert.Contains(t, out.String(), "doctor --fix")
	assert.FileExists(t, live)

	_, err = Run(context.Background(), env, true)
	require.NoError(t, err)
	assert.NoFileExists(t, live)
}

func TestRunLiveComposeProject(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	p := env.Project
	write(t, p.LiveDescriptor(), `{"name": "demo", "service": "dev", "dockerComposeFile": "docker-compose.yml"}`)
	write(t, filepath.Join(p.ConfigDir, "docker-compose.yml"), "services:\n  app:\n    image: alpine\n")

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "compose", issues[0].Key)
	assert.Equal(t, CategoryProject, issues[0].Category)
}

func TestRunUnresolvedComposeVariables(t *testing.T) {
	t.Parallel()

	env, _ := newEnv(t)
	p := env.Project
	write(t, p.LiveDescriptor(), `{"name": "demo", "service": "dev"}`)
	write(t, p.LiveEnvFile(), "DEV_IMAGE=alpine\n")
	write(t, filepath.Join(p.ConfigDir, "docker-compose.yml"), `services:
  dev:
    image: ${DEV_IMAGE}
    user: "${DOCTOR_TEST_UNSET_UID}:${DOCTOR_TEST_UNSET_GID:-0}"
`)

	issues, err := Run(context.Background(), env, false)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "docker-compose.yml", issues[0].Key)
	assert.Contains(t, issues[0].Description, "DOCTOR_TEST_UNSET_UID")
	assert.NotContains(t, issues[0].Description, "GID")
	assert.NotContains(t, issues[0].Description, "DEV_IMAGE")
}
