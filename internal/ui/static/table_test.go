package static

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/aniongithub/devcontainer-tools/internal/docker"
	"github.com/aniongithub/devcontainer-tools/internal/lifecycle"
)

func TestInstanceRows(t *testing.T) {
	t.Parallel()

	t.Run("marks active", func(t *testing.T) {
		t.Parallel()
		rows := InstanceRows([]lifecycle.Entry{
			{Name: "api", Service: "dev", ComposeFiles: []string{"a.yml", "b.yml"}, ID: "0123456789abcdef"},
			{Name: "api", Active: true},
		})
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if len(rows[0]) != len(InstanceHeaders) {
			t.Fatalf("expected %d columns, got %d", len(InstanceHeaders), len(rows[0]))
		}
		if rows[0][3] != "a.yml,b.yml" {
			t.Errorf("compose column = %q", rows[0][3])
		}
		if rows[0][5] != "0123456789ab" {
			t.Errorf("id column = %q", rows[0][5])
		}
		if !strings.Contains(rows[1][1], "(active)") {
			t.Errorf("active row = %q", rows[1][1])
		}
	})

	t.Run("none row without live instance", func(t *testing.T) {
		t.Parallel()
		rows := InstanceRows([]lifecycle.Entry{{Name: "api"}})
		if len(rows) != 2 || rows[1][1] != "(none)" {
			t.Errorf("expected (none) row, got %v", rows)
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		t.Parallel()
		rows := InstanceRows(nil)
		if len(rows) != 1 || rows[0][1] != "(none)" {
			t.Errorf("expected single (none) row, got %v", rows)
		}
	})
}

func TestContainerRow(t *testing.T) {
	t.Parallel()

	row := ContainerRow(docker.Status{
		Project:     "api",
		Service:     "dev",
		State:       docker.Running,
		ContainerID: "fedcba9876543210",
		Detail:      "Up 2 minutes",
	})
	if len(row) != len(ContainerHeaders) {
		t.Fatalf("expected %d columns, got %d", len(ContainerHeaders), len(row))
	}
	if got := ansi.Strip(row[2]); !strings.Contains(got, "running") {
		t.Errorf("state column = %q", got)
	}
	if row[3] != "fedcba987654" {
		t.Errorf("container column = %q", row[3])
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	if got := RenderTable(InstanceHeaders, nil); got != "" {
		t.Errorf("expected empty output without rows, got %q", got)
	}

	out := ansi.Strip(RenderTable([]string{"NAME", "SERVICE"}, [][]string{{"api", "dev"}, {"web-frontend", "app"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "NAME") {
		t.Errorf("header line = %q", lines[0])
	}
	// columns are aligned
	if strings.Index(lines[1], "dev") != strings.Index(lines[2], "app") {
		t.Errorf("misaligned columns:\n%s", out)
	}
}
