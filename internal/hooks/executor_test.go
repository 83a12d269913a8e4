package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/ui/prompt"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Hook tests that exec freshly written files do not run in parallel:
// a concurrent fork can inherit the write fd and fail with ETXTBSY.

func testCtx(out *bytes.Buffer) context.Context {
	return log.WithLogger(context.Background(), log.New(out, false, false))
}

func writeHook(t *testing.T, dir string, slot Slot, body string, mode os.FileMode) Hook {
	t.Helper()
	h := Locate(dir, slot)
	require.NoError(t, os.WriteFile(h.Path, []byte("#!/bin/sh\n"+body), mode))
	return h
}

func TestRun_MissingHookIsNoop(t *testing.T) {
	t.Parallel()

	e := &Executor{Prompter: prompt.Disabled{}}
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: Locate(t.TempDir(), PreActivate)})
	assert.NoError(t, err)
}

// Given a hook with a required-variable marker whose variable is already
// set, the hook runs without prompting and sees the existing value.
func TestRun_SkipsPromptForKnownVariable(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	h := writeHook(t, dir, PreActivate, `# ${FOO?"enter value"}
echo "$FOO" > "`+out+`"
`, 0o755)

	p := &prompt.Scripted{}
	e := &Executor{Prompter: p, Host: vars.Mapping{}}
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h, Env: vars.Mapping{"FOO": "bar"}})
	require.NoError(t, err)

	assert.Empty(t, p.Asked())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "bar\n", string(data))
}

func TestRun_PromptsOnceInOrder(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	h := writeHook(t, dir, PostInitialize, `# ${B?"second"} ${A?"first"} ${B?"again"}
echo "$A-$B" > "`+out+`"
`, 0o755)

	p := &prompt.Scripted{Answers: map[string]string{"A": "1", "B": "2"}}
	env := vars.Mapping{}
	e := &Executor{Prompter: p, Host: vars.Mapping{}}
	require.NoError(t, e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h, Env: env}))

	assert.Equal(t, []string{"B", "A"}, p.Asked())
	assert.Equal(t, vars.Mapping{"A": "1", "B": "2"}, env, "answers are stored in the hook env")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "1-2\n", string(data))
}

func TestRun_ForceReEntry(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PreActivate, `# ${FOO?"enter"}`+"\n", 0o755)

	p := &prompt.Scripted{Answers: map[string]string{"FOO": "new"}}
	env := vars.Mapping{"FOO": "old"}
	e := &Executor{Prompter: p, Host: vars.Mapping{}}
	require.NoError(t, e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h, Env: env, ForceReEntry: true}))

	assert.Equal(t, []string{"FOO"}, p.Asked())
	assert.Equal(t, "new", env["FOO"])
}

func TestRun_PromptFailure(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PreActivate, `# ${TOKEN?"token"}`+"\n", 0o755)

	e := &Executor{Prompter: prompt.Disabled{}}
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h})

	var herr *HookExecutionError
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, err, prompt.ErrNonInteractive)
	assert.Equal(t, PreActivate, herr.Hook.Slot)
}

func TestRun_PersistAnswers(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PostActivate, `# ${API_TOKEN?"token"}`+"\n", 0o755)
	require.NoError(t, os.WriteFile(h.EnvPath, []byte("OTHER=x\n"), 0o644))

	p := &prompt.Scripted{Answers: map[string]string{"API_TOKEN": "s3cret"}}
	e := &Executor{Prompter: p, Host: vars.Mapping{}, PersistAnswers: true}
	require.NoError(t, e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h}))

	saved, err := envfile.Load(h.EnvPath)
	require.NoError(t, err)
	assert.Equal(t, vars.Mapping{"OTHER": "x", "API_TOKEN": "s3cret"}, saved)
}

func TestRun_EnvironmentLayering(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	h := writeHook(t, dir, PreActivate, `echo "$HOSTONLY $SHARED $BASEONLY" > "`+out+`"`+"\n", 0o755)

	e := &Executor{Host: vars.Mapping{"HOSTONLY": "h", "SHARED": "host", "PATH": os.Getenv("PATH")}}
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{
		Hook: h,
		Base: vars.Mapping{"SHARED": "base", "BASEONLY": "b"},
		Env:  vars.Mapping{"SHARED": "hook"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "h hook b\n", string(data))
}

func TestRun_WorkingDirectory(t *testing.T) {
	hookDir := t.TempDir()
	workDir := t.TempDir()
	h := writeHook(t, hookDir, PreInitialize, "touch marker\n", 0o755)

	e := &Executor{}
	require.NoError(t, e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h, Dir: workDir}))

	assert.FileExists(t, filepath.Join(workDir, "marker"))
	assert.NoFileExists(t, filepath.Join(hookDir, "marker"))
}

func TestRun_StreamsOutput(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PostActivate, "echo hello from hook\necho oops >&2\n", 0o755)

	var out, stderr bytes.Buffer
	e := &Executor{Stderr: &stderr}
	require.NoError(t, e.Run(testCtx(&out), Invocation{Hook: h}))

	assert.Contains(t, out.String(), "hello from hook\n")
	assert.Equal(t, "oops\n", stderr.String())
}

func TestRun_StderrRecordedInDebugFile(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PreDeactivate, "echo stopping >&2\nexit 2\n", 0o755)

	var stderr, file bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&bytes.Buffer{}, false, false).WithFile(&file))
	e := &Executor{Stderr: &stderr}
	require.Error(t, e.Run(ctx, Invocation{Hook: h}))

	assert.Equal(t, "stopping\n", stderr.String())
	assert.Contains(t, file.String(), `"msg":"stopping"`)
	assert.Contains(t, file.String(), `"level":"WARN"`)
	assert.Contains(t, file.String(), `"slot":"pre-deactivate"`)
}

func TestRun_SharedHookDoesNotPersist(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PreInitialize, `# ${TOKEN?"token"}`+"\n", 0o755)

	p := &prompt.Scripted{Answers: map[string]string{"TOKEN": "s3cret"}}
	e := &Executor{Prompter: p, Host: vars.Mapping{}, PersistAnswers: true}
	inv := Invocation{Hook: h, Env: vars.Mapping{}, Shared: true}
	require.NoError(t, e.Run(testCtx(&bytes.Buffer{}), inv))

	assert.Equal(t, "s3cret", inv.Env["TOKEN"], "the answer still reaches the hook")
	assert.NoFileExists(t, h.EnvPath)
}

func TestRun_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PreDeactivate, "exit 4\n", 0o755)

	e := &Executor{}
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h})

	var herr *HookExecutionError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 4, herr.ExitCode)
	assert.Contains(t, err.Error(), "exited with status 4")
}

func TestRun_NotExecutable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := writeHook(t, dir, PreActivate, "true\n", 0o644)

	e := &Executor{}
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h})

	var herr *HookExecutionError
	require.ErrorAs(t, err, &herr)
	assert.ErrorIs(t, err, ErrNotExecutable)
}

func TestRun_Timeout(t *testing.T) {
	dir := t.TempDir()
	h := writeHook(t, dir, PreActivate, "exec sleep 10\n", 0o755)

	e := &Executor{Timeout: 100 * time.Millisecond}
	start := time.Now()
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 8*time.Second)
}

func TestRun_BinaryHookNotScanned(t *testing.T) {
	dir := t.TempDir()
	h := Locate(dir, PreActivate)
	// Not a runnable program; the run fails, but no prompt may happen first.
	content := append([]byte{0x7f, 'E', 'L', 'F', 0x01}, []byte(`${X?"x"}`)...)
	require.NoError(t, os.WriteFile(h.Path, content, 0o755))

	p := &prompt.Scripted{}
	e := &Executor{Prompter: p}
	err := e.Run(testCtx(&bytes.Buffer{}), Invocation{Hook: h})

	assert.Error(t, err)
	assert.Empty(t, p.Asked())
}

func TestEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := Locate(dir, PreActivate)
	require.NoError(t, os.WriteFile(h.EnvPath, []byte("A=override\nC=3\n"), 0o644))

	defaults := vars.Mapping{"A": "default", "B": "2"}
	hookEnv, base := Env(testCtx(&bytes.Buffer{}), h, defaults)

	assert.Equal(t, vars.Mapping{"A": "override", "B": "2", "C": "3"}, hookEnv)
	assert.Equal(t, defaults, base)
	assert.Equal(t, "default", defaults["A"], "defaults are not mutated")
}

func TestEnv_MalformedOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := Locate(dir, PreActivate)
	require.NoError(t, os.WriteFile(h.EnvPath, []byte("garbage line\n"), 0o644))

	var out bytes.Buffer
	hookEnv, _ := Env(testCtx(&out), h, vars.Mapping{"A": "1"})

	assert.Equal(t, vars.Mapping{"A": "1"}, hookEnv)
	assert.Contains(t, out.String(), "warning:")
}

func TestLocate(t *testing.T) {
	t.Parallel()

	h := Locate("/x", PostDeactivate)
	assert.Equal(t, "/x/post-deactivate", h.Path)
	assert.Equal(t, "/x/post-deactivate.env", h.EnvPath)
	assert.Len(t, Slots, 6)
}

func TestHookExecutionError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := error(&HookExecutionError{Hook: Locate("/x", PreActivate), Err: inner, ExitCode: -1})
	assert.ErrorIs(t, err, inner)
	assert.True(t, strings.HasPrefix(err.Error(), "pre-activate hook /x/pre-activate"))
}
