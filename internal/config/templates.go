package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// TemplatesEnv overrides the template search path.
const TemplatesEnv = "DEVCONTAINER_TEMPLATES"

// TemplatesDirFor resolves the template search path.
// Precedence: flag, DEVCONTAINER_TEMPLATES, config, then "templates" next
// to the running executable (symlinks resolved).
func (c *Config) TemplatesDirFor(flag string) (string, error) {
	for _, candidate := range []string{flag, os.Getenv(TemplatesEnv), c.TemplatesDir} {
		if candidate == "" {
			continue
		}
		dir, err := homedir.Expand(candidate)
		if err != nil {
			return "", err
		}
		return filepath.Abs(dir)
	}
	return ExecutableTemplatesDir()
}

// ExecutableTemplatesDir returns <dir of the running executable>/templates.
func ExecutableTemplatesDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "templates"), nil
}
