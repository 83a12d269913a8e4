//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aniongithub/devcontainer-tools/internal/config"
	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// scenario is a project directory plus a templates directory on disk.
type scenario struct {
	Project   string
	Templates string
	Stdout    *bytes.Buffer
	Stderr    *bytes.Buffer
}

// setupScenario creates a project and a "default" template, points the
// global flags at them and pins the host identity.
// Tests using it must not run in parallel: the CLI keeps flags in globals.
func setupScenario(t *testing.T) *scenario {
	t.Helper()
	root := resolvePath(t, t.TempDir())

	s := &scenario{
		Project:   filepath.Join(root, "project"),
		Templates: filepath.Join(root, "templates"),
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	}
	writeFile(t, filepath.Join(s.Project, "Dockerfile"), "FROM alpine\n", 0o644)
	writeFile(t, filepath.Join(s.Templates, "default", "devcontainer.json"),
		`{"name": "${DEVCONTAINER_NAME}", "service": "dev", "workspaceFolder": "/workspace", "dockerComposeFile": "docker-compose.yml"}`, 0o644)
	writeFile(t, filepath.Join(s.Templates, "default", "docker-compose.yml"),
		"services:\n  dev:\n    image: alpine\n    user: ${HOST_USER_UID}:${HOST_USER_GID}\n", 0o644)
	writeFile(t, filepath.Join(s.Templates, "default", ".env"), "GREETING=hello\n", 0o644)

	oldContext, oldTemplates, oldNoInput := contextFlag, templatesFlag, noInput
	contextFlag, templatesFlag, noInput = s.Project, s.Templates, true
	t.Cleanup(func() {
		contextFlag, templatesFlag, noInput = oldContext, oldTemplates, oldNoInput
	})

	t.Setenv("HOST_USER_UID", "1000")
	t.Setenv("HOST_USER_GID", "1000")
	t.Setenv("HOST_USER_NAME", "dev")
	t.Setenv("USER", "dev")
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	return s
}

// ctx returns a context with logger, printer and config attached.
func (s *scenario) ctx(t *testing.T) context.Context {
	t.Helper()
	c := config.Default()
	c.Log.File = config.LogOff
	ctx := log.WithLogger(context.Background(), log.New(s.Stderr, false, false))
	ctx = output.WithPrinter(ctx, output.New(s.Stdout))
	return config.WithConfig(ctx, &c)
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
