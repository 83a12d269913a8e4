package compose

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniongithub/devcontainer-tools/internal/descriptor"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

type call struct {
	mode string
	dir  string
	argv string
}

type recorder struct {
	calls  []call
	output string
	err    error
}

func (r *recorder) add(mode, dir, name string, args []string) {
	r.calls = append(r.calls, call{mode: mode, dir: dir, argv: strings.Join(append([]string{name}, args...), " ")})
}

func (r *recorder) Interactive(_ context.Context, dir, name string, args ...string) error {
	r.add("interactive", dir, name, args)
	return r.err
}

func (r *recorder) Stream(_ context.Context, dir, name string, args ...string) error {
	r.add("stream", dir, name, args)
	return r.err
}

func (r *recorder) Output(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	r.add("output", dir, name, args)
	return []byte(r.output), r.err
}

func newTestRunner(t *testing.T, composeCommand string, withEnvFile bool) (*Runner, *recorder) {
	t.Helper()
	dir := t.TempDir()
	if withEnvFile {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1\n"), 0o644))
	}
	d := &descriptor.Descriptor{
		Name:              "demo",
		Service:           "dev",
		WorkspaceFolder:   "/workspace",
		DockerComposeFile: descriptor.ComposeFiles{"docker-compose.yml", "override.yml"},
	}
	r, err := NewRunner(composeCommand, "", dir, d, vars.Mapping{ShellVar: "/bin/zsh"})
	require.NoError(t, err)
	rec := &recorder{}
	r.WithExec(rec)
	return r, rec
}

func TestNewRunnerErrors(t *testing.T) {
	t.Parallel()

	d := &descriptor.Descriptor{Service: "dev"}
	_, err := NewRunner("", "", "/tmp", d, nil)
	assert.ErrorContains(t, err, "empty")

	_, err = NewRunner(`docker "compose`, "", "/tmp", d, nil)
	assert.ErrorContains(t, err, "parse compose command")

	_, err = NewRunner("docker compose", "", "/tmp", nil, nil)
	assert.Error(t, err)

	_, err = NewRunner("docker compose", "", "/tmp", &descriptor.Descriptor{Name: "x"}, nil)
	assert.ErrorContains(t, err, "no service")
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts RunOptions
		want string
	}{
		{
			name: "default shell",
			want: "docker compose -f docker-compose.yml -f override.yml --env-file .env run --rm -w /workspace dev /bin/zsh",
		},
		{
			name: "relative workdir and command",
			opts: RunOptions{Command: []string{"make", "test"}, Workdir: "src"},
			want: "docker compose -f docker-compose.yml -f override.yml --env-file .env run --rm -w /workspace/src dev make test",
		},
		{
			name: "absolute workdir",
			opts: RunOptions{Command: []string{"ls"}, Workdir: "/tmp"},
			want: "docker compose -f docker-compose.yml -f override.yml --env-file .env run --rm -w /tmp dev ls",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, rec := newTestRunner(t, "docker compose", true)
			require.NoError(t, r.Run(context.Background(), tt.opts))
			require.Len(t, rec.calls, 1)
			assert.Equal(t, "interactive", rec.calls[0].mode)
			assert.Equal(t, r.Dir, rec.calls[0].dir)
			assert.Equal(t, tt.want, rec.calls[0].argv)
		})
	}
}

func TestShellFallback(t *testing.T) {
	t.Parallel()

	d := &descriptor.Descriptor{
		Service:  "dev",
		Settings: map[string]any{"terminal.integrated.shell.linux": "/bin/bash"},
	}
	r, err := NewRunner("docker compose", "", t.TempDir(), d, nil)
	require.NoError(t, err)
	assert.Equal(t, "/bin/bash", r.shell())

	r.Env = vars.Mapping{ShellVar: "/bin/zsh"}
	assert.Equal(t, "/bin/zsh", r.shell())

	r.Descriptor = &descriptor.Descriptor{Service: "dev"}
	r.Env = nil
	assert.Equal(t, "/bin/sh", r.shell())
}

func TestStart(t *testing.T) {
	t.Parallel()

	r, rec := newTestRunner(t, "docker-compose", false)
	require.NoError(t, r.Start(context.Background(), StartOptions{Build: true}))
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "docker-compose -f docker-compose.yml -f override.yml up --build --no-start dev", rec.calls[0].argv)
	assert.Equal(t, "docker-compose -f docker-compose.yml -f override.yml start dev", rec.calls[1].argv)
}

func TestStartFailureStopsEarly(t *testing.T) {
	t.Parallel()

	r, rec := newTestRunner(t, "docker compose", false)
	rec.err = assert.AnError
	err := r.Start(context.Background(), StartOptions{})
	require.ErrorIs(t, err, assert.AnError)
	assert.Len(t, rec.calls, 1)
	assert.Contains(t, err.Error(), "create dev")
}

func TestStop(t *testing.T) {
	t.Parallel()

	r, rec := newTestRunner(t, `"podman" compose`, false)
	require.NoError(t, r.Stop(context.Background(), StopOptions{Timeout: 3}))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "stream", rec.calls[0].mode)
	assert.Equal(t, "podman compose -f docker-compose.yml -f override.yml stop --timeout 3 dev", rec.calls[0].argv)
}

func TestExec(t *testing.T) {
	t.Parallel()

	r, rec := newTestRunner(t, "docker compose", false)
	rec.output = "abc123\n"
	require.NoError(t, r.Exec(context.Background(), ExecOptions{Command: []string{"tail", "-f", "log"}, Workdir: "app", Detach: true}))
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "docker compose -f docker-compose.yml -f override.yml ps -q dev", rec.calls[0].argv)
	assert.Equal(t, "stream", rec.calls[1].mode)
	assert.Equal(t, "docker exec -d -w /workspace/app abc123 tail -f log", rec.calls[1].argv)
}

func TestExecInteractive(t *testing.T) {
	t.Parallel()

	r, rec := newTestRunner(t, "docker compose", false)
	rec.output = "abc123\n"
	require.NoError(t, r.Exec(context.Background(), ExecOptions{}))
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "interactive", rec.calls[1].mode)
	assert.True(t, strings.HasPrefix(rec.calls[1].argv, "docker exec -i"))
	assert.True(t, strings.HasSuffix(rec.calls[1].argv, "-w /workspace abc123 /bin/zsh"))
}

func TestExecNotRunning(t *testing.T) {
	t.Parallel()

	r, rec := newTestRunner(t, "docker compose", false)
	err := r.Exec(context.Background(), ExecOptions{})
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.Len(t, rec.calls, 1)
}

func TestFiles(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t, "docker compose", false)
	assert.Equal(t, []string{
		filepath.Join(r.Dir, "docker-compose.yml"),
		filepath.Join(r.Dir, "override.yml"),
	}, r.Files())
}
