package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Compose.Command != DefaultComposeCommand {
		t.Errorf("expected compose.command %q, got %q", DefaultComposeCommand, cfg.Compose.Command)
	}
	if cfg.Folder != DefaultFolder {
		t.Errorf("expected folder %q, got %q", DefaultFolder, cfg.Folder)
	}
	if cfg.Defaults.ShutdownAction != "stopCompose" {
		t.Errorf("expected shutdown action stopCompose, got %q", cfg.Defaults.ShutdownAction)
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
		t.Fatalf("defaultConfig is not valid TOML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig does not validate: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("DEVCONTAINER_THEME", "")
	t.Setenv("DEVCONTAINER_THEME_MODE", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Compose.Command != DefaultComposeCommand {
		t.Errorf("expected default compose command, got %q", cfg.Compose.Command)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("DEVCONTAINER_THEME", "")
	t.Setenv("DEVCONTAINER_THEME_MODE", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
templates_dir = "/opt/templates"

[compose]
command = "docker-compose"

[hooks]
persist_answers = true
timeout = "90s"

[defaults]
shell = "/bin/zsh"
shutdown_action = "none"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.TemplatesDir != "/opt/templates" {
		t.Errorf("TemplatesDir = %q", cfg.TemplatesDir)
	}
	if cfg.Compose.Command != "docker-compose" {
		t.Errorf("Compose.Command = %q", cfg.Compose.Command)
	}
	if cfg.Compose.Docker != DefaultDockerCommand {
		t.Errorf("Compose.Docker = %q, want default", cfg.Compose.Docker)
	}
	if !cfg.Hooks.PersistAnswers {
		t.Error("Hooks.PersistAnswers = false, want true")
	}
	if cfg.Hooks.Timeout != 90*time.Second {
		t.Errorf("Hooks.Timeout = %s, want 90s", cfg.Hooks.Timeout)
	}
	if cfg.Defaults.Shell != "/bin/zsh" {
		t.Errorf("Defaults.Shell = %q", cfg.Defaults.Shell)
	}
	if cfg.Defaults.Dockerfile != DefaultDockerfile {
		t.Errorf("Defaults.Dockerfile = %q, want default", cfg.Defaults.Dockerfile)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", "templates_dir = ", "failed to parse"},
		{"relative templates dir", `templates_dir = "templates"`, "templates_dir must be absolute"},
		{"bad shutdown action", "[defaults]\nshutdown_action = \"halt\"", "invalid shutdown action"},
		{"bad theme mode", "[theme]\nmode = \"sepia\"", "invalid theme.mode"},
		{"negative stop timeout", "[compose]\nstop_timeout = -1", "stop_timeout"},
		{"folder with slash", `folder = "a/b"`, "single directory name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEVCONTAINER_THEME", "")
			t.Setenv("DEVCONTAINER_THEME_MODE", "")
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	// Cannot use t.Parallel(): t.Setenv mutates process env
	t.Run("DEVCONTAINER_THEME overrides theme name", func(t *testing.T) {
		t.Setenv("DEVCONTAINER_THEME", "nord")
		cfg := Default()
		applyEnvOverrides(&cfg)
		if cfg.Theme.Name != "nord" {
			t.Errorf("Theme.Name = %q, want %q", cfg.Theme.Name, "nord")
		}
	})

	t.Run("empty env vars leave config unchanged", func(t *testing.T) {
		t.Setenv("DEVCONTAINER_THEME", "")
		t.Setenv("DEVCONTAINER_THEME_MODE", "")
		cfg := Config{Theme: ThemeConfig{Name: "none", Mode: "light"}}
		applyEnvOverrides(&cfg)
		if cfg.Theme.Name != "none" || cfg.Theme.Mode != "light" {
			t.Errorf("Theme = %+v, want unchanged", cfg.Theme)
		}
	})
}

func TestPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv("DEVCONTAINER_CONFIG", want)
	got, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	t.Setenv("DEVCONTAINER_CONFIG", path)

	got, err := Init(false)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got != path {
		t.Errorf("Init() = %q, want %q", got, path)
	}

	if _, err := Init(false); err == nil {
		t.Error("second Init(false) should fail when file exists")
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(true) error = %v", err)
	}
}

func TestLogPath(t *testing.T) {
	cfg := Default()
	cfg.Log.File = LogOff
	if got := cfg.LogPath(); got != "" {
		t.Errorf("LogPath() with off = %q, want empty", got)
	}

	cfg.Log.File = "/var/log/dc.log"
	if got := cfg.LogPath(); got != "/var/log/dc.log" {
		t.Errorf("LogPath() = %q", got)
	}
}

func TestTemplatesDirFor(t *testing.T) {
	cfg := Default()
	cfg.TemplatesDir = "/from/config"

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(TemplatesEnv, "/from/env")
		got, err := cfg.TemplatesDirFor("/from/flag")
		if err != nil {
			t.Fatal(err)
		}
		if got != "/from/flag" {
			t.Errorf("got %q, want /from/flag", got)
		}
	})

	t.Run("env before config", func(t *testing.T) {
		t.Setenv(TemplatesEnv, "/from/env")
		got, _ := cfg.TemplatesDirFor("")
		if got != "/from/env" {
			t.Errorf("got %q, want /from/env", got)
		}
	})

	t.Run("config", func(t *testing.T) {
		t.Setenv(TemplatesEnv, "")
		got, _ := cfg.TemplatesDirFor("")
		if got != "/from/config" {
			t.Errorf("got %q, want /from/config", got)
		}
	})

	t.Run("executable dir fallback", func(t *testing.T) {
		t.Setenv(TemplatesEnv, "")
		empty := Default()
		got, err := empty.TemplatesDirFor("")
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(got) != "templates" {
			t.Errorf("got %q, want a templates dir", got)
		}
	})
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	if got := FromContext(context.Background()); got.Compose.Command != DefaultComposeCommand {
		t.Errorf("FromContext without config should return defaults, got %+v", got.Compose)
	}

	cfg := Default()
	cfg.Compose.Command = "podman compose"
	ctx := WithConfig(context.Background(), &cfg)
	if got := FromContext(ctx); got.Compose.Command != "podman compose" {
		t.Errorf("FromContext() compose = %q", got.Compose.Command)
	}
}
