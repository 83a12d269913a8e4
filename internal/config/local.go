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

// LocalConfigFileName is the per-project override file in the project context.
const LocalConfigFileName = ".devcontainer.toml"

// LocalConfig holds per-project overrides.
// Pointer fields and empty strings mean "not set" (inherit from global).
type LocalConfig struct {
	TemplatesDir string       `toml:"templates_dir"`
	Compose      LocalCompose `toml:"compose"`
	Hooks        LocalHooks   `toml:"hooks"`
	Defaults     InitDefaults `toml:"defaults"`
}

// LocalCompose holds local compose overrides
type LocalCompose struct {
	Command     string `toml:"command"`
	StopTimeout *int   `toml:"stop_timeout"`
}

// LocalHooks holds local hook overrides
type LocalHooks struct {
	Disabled       *bool          `toml:"disabled"`
	PersistAnswers *bool          `toml:"persist_answers"`
	Timeout        *time.Duration `toml:"timeout"`
}

// LoadLocal reads <contextDir>/.devcontainer.toml.
// Returns nil (no error) if the file doesn't exist.
// A relative templates_dir is resolved against contextDir.
func LoadLocal(contextDir string) (*LocalConfig, error) {
	configFile := filepath.Join(contextDir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if _, err := toml.Decode(string(data), &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if local.TemplatesDir != "" {
		dir, err := homedir.Expand(local.TemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("expand templates_dir in %s: %w", configFile, err)
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(contextDir, dir)
		}
		local.TemplatesDir = dir
	}

	if err := ValidateShutdownAction(local.Defaults.ShutdownAction); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}
	if local.Hooks.Timeout != nil && *local.Hooks.Timeout < 0 {
		return nil, fmt.Errorf("%s: hooks.timeout must not be negative", configFile)
	}
	return &local, nil
}
