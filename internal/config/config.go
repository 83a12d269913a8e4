package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// Default file and folder names.
const (
	DefaultFolder         = ".devcontainer"
	DefaultComposeCommand = "docker compose"
	DefaultDockerCommand  = "docker"
	DefaultTemplate       = "default"
	DefaultShell          = "/bin/bash"
	DefaultShutdownAction = "stopCompose"
	DefaultDockerfile     = "Dockerfile"
	DefaultDevDockerfile  = "dev.Dockerfile"
	DefaultWorkspaceRoot  = "."
	DefaultStopTimeout    = 10
)

// ComposeConfig holds the external orchestrator command lines.
type ComposeConfig struct {
	Command     string `toml:"command"`      // e.g. "docker compose" or "docker-compose"
	Docker      string `toml:"docker"`       // docker CLI used for exec
	StopTimeout int    `toml:"stop_timeout"` // seconds
}

// HooksConfig holds lifecycle hook settings.
type HooksConfig struct {
	Disabled       bool          `toml:"disabled"`
	PersistAnswers bool          `toml:"persist_answers"`
	Timeout        time.Duration `toml:"timeout"` // 0 = no limit
}

// InitDefaults are the defaults for "devcontainer init" flags.
type InitDefaults struct {
	Template       string `toml:"template"`
	Shell          string `toml:"shell"`
	ShutdownAction string `toml:"shutdown_action"`
	Dockerfile     string `toml:"dockerfile"`
	DevDockerfile  string `toml:"dev_dockerfile"`
	WorkspaceRoot  string `toml:"workspace_root"`
}

// LogConfig configures the debug log file.
type LogConfig struct {
	File       string `toml:"file"` // "" = default location, "off" = disabled
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// ThemeConfig selects the UI color theme.
type ThemeConfig struct {
	Name     string `toml:"name"` // default, nord, none
	Mode     string `toml:"mode"` // auto, light, dark
	Nerdfont bool   `toml:"nerdfont"`
}

// Config holds the devcontainer configuration
type Config struct {
	TemplatesDir string        `toml:"templates_dir"`
	Folder       string        `toml:"folder"` // configuration folder name inside the project
	Compose      ComposeConfig `toml:"compose"`
	Hooks        HooksConfig   `toml:"hooks"`
	Defaults     InitDefaults  `toml:"defaults"`
	Log          LogConfig     `toml:"log"`
	Theme        ThemeConfig   `toml:"theme"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Folder: DefaultFolder,
		Compose: ComposeConfig{
			Command:     DefaultComposeCommand,
			Docker:      DefaultDockerCommand,
			StopTimeout: DefaultStopTimeout,
		},
		Defaults: InitDefaults{
			Template:       DefaultTemplate,
			Shell:          DefaultShell,
			ShutdownAction: DefaultShutdownAction,
			Dockerfile:     DefaultDockerfile,
			DevDockerfile:  DefaultDevDockerfile,
			WorkspaceRoot:  DefaultWorkspaceRoot,
		},
		Log: LogConfig{
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv("DEVCONTAINER_CONFIG"); p != "" {
		return homedir.Expand(p)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "devcontainer", "config.toml"), nil
}

// Load reads the global config file.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, see Load.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			applyEnvOverrides(&cfg)
			return cfg, cfg.Validate()
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := ValidatePath(cfg.TemplatesDir, "templates_dir"); err != nil {
		return Default(), err
	}
	if cfg.TemplatesDir != "" {
		expanded, err := homedir.Expand(cfg.TemplatesDir)
		if err != nil {
			return Default(), fmt.Errorf("expand templates_dir: %w", err)
		}
		cfg.TemplatesDir = expanded
	}
	if cfg.Log.File != "" && cfg.Log.File != LogOff {
		expanded, err := homedir.Expand(cfg.Log.File)
		if err != nil {
			return Default(), fmt.Errorf("expand log.file: %w", err)
		}
		cfg.Log.File = expanded
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	cfg.fillDefaults()
	return cfg, nil
}

// applyEnvOverrides applies DEVCONTAINER_THEME and DEVCONTAINER_THEME_MODE.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DEVCONTAINER_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("DEVCONTAINER_THEME_MODE"); v != "" {
		cfg.Theme.Mode = v
	}
}

// LogOff disables the debug log file.
const LogOff = "off"

// LogPath returns the debug log location, or "" when disabled.
func (c *Config) LogPath() string {
	switch c.Log.File {
	case LogOff:
		return ""
	case "":
		dir, err := os.UserCacheDir()
		if err != nil {
			return ""
		}
		return filepath.Join(dir, "devcontainer", "devcontainer.log")
	default:
		return c.Log.File
	}
}

// fillDefaults restores defaults for fields explicitly set to "".
func (c *Config) fillDefaults() {
	d := Default()
	if c.Folder == "" {
		c.Folder = d.Folder
	}
	if c.Compose.Command == "" {
		c.Compose.Command = d.Compose.Command
	}
	if c.Compose.Docker == "" {
		c.Compose.Docker = d.Compose.Docker
	}
	if c.Defaults.Template == "" {
		c.Defaults.Template = d.Defaults.Template
	}
	if c.Defaults.Shell == "" {
		c.Defaults.Shell = d.Defaults.Shell
	}
	if c.Defaults.ShutdownAction == "" {
		c.Defaults.ShutdownAction = d.Defaults.ShutdownAction
	}
	if c.Defaults.Dockerfile == "" {
		c.Defaults.Dockerfile = d.Defaults.Dockerfile
	}
	if c.Defaults.DevDockerfile == "" {
		c.Defaults.DevDockerfile = d.Defaults.DevDockerfile
	}
	if c.Defaults.WorkspaceRoot == "" {
		c.Defaults.WorkspaceRoot = d.Defaults.WorkspaceRoot
	}
}

const defaultConfig = `# devcontainer configuration

# Where templates are looked up. Each subdirectory is one template.
# Must be an absolute path or start with ~.
# Default: the "templates" directory next to the devcontainer executable.
# Can also be set with the DEVCONTAINER_TEMPLATES env var or --templates.
# templates_dir = "~/devcontainer-templates"

# Name of the configuration folder inside a project
# folder = ".devcontainer"

[compose]
# Orchestrator command line, split like a shell would
command = "docker compose"
# docker CLI used by "devcontainer exec"
docker = "docker"
# Seconds to wait in "devcontainer stop" before killing
stop_timeout = 10

[hooks]
# Skip all lifecycle hooks (same as --disable-hooks)
disabled = false
# Save values entered at hook prompts to the hook's .env file,
# so you are only asked once
persist_answers = false
# Abort a hook that runs longer than this ("30s", "5m"); 0 = no limit
# timeout = "10m"

[defaults]
# Defaults for "devcontainer init"
template = "default"
shell = "/bin/bash"
shutdown_action = "stopCompose"   # none, stopCompose or stopContainer
dockerfile = "Dockerfile"
dev_dockerfile = "dev.Dockerfile"
workspace_root = "."

[log]
# JSON debug log, rotated by size. "off" disables it.
# Default: <user cache dir>/devcontainer/devcontainer.log
# file = "~/.cache/devcontainer/devcontainer.log"
max_size_mb = 5
max_backups = 3

[theme]
# name = "default"   # default, nord or none
# mode = "auto"      # auto, light or dark
# nerdfont = false
`

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// DefaultConfig returns the commented default config file.
func DefaultConfig() string {
	return defaultConfig
}
