package lifecycle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aniongithub/devcontainer-tools/internal/descriptor"
	"github.com/aniongithub/devcontainer-tools/internal/envfile"
)

// EnvFileName is the env file of templates, instances and the live configuration.
const EnvFileName = ".env"

// Project locates the configuration of one project context.
type Project struct {
	Context      string // build context, holds the base Dockerfile
	ConfigDir    string // <Context>/.devcontainer
	TemplatesDir string // template search path
}

// NewProject returns a Project with absolute paths.
func NewProject(contextDir, folder, templatesDir string) (Project, error) {
	ctxAbs, err := filepath.Abs(contextDir)
	if err != nil {
		return Project{}, fmt.Errorf("resolve context: %w", err)
	}
	tplAbs := templatesDir
	if tplAbs != "" {
		if tplAbs, err = filepath.Abs(templatesDir); err != nil {
			return Project{}, fmt.Errorf("resolve templates dir: %w", err)
		}
	}
	return Project{
		Context:      ctxAbs,
		ConfigDir:    filepath.Join(ctxAbs, folder),
		TemplatesDir: tplAbs,
	}, nil
}

// TemplateDir returns the directory of a template.
func (p Project) TemplateDir(name string) string {
	return filepath.Join(p.TemplatesDir, name)
}

// InstanceDir returns the directory of a saved instance.
func (p Project) InstanceDir(name string) string {
	return filepath.Join(p.ConfigDir, name)
}

// LiveEnvFile returns the env file of the live configuration.
func (p Project) LiveEnvFile() string {
	return filepath.Join(p.ConfigDir, EnvFileName)
}

// LiveDescriptor returns the descriptor of the live configuration.
func (p Project) LiveDescriptor() string {
	return filepath.Join(p.ConfigDir, descriptor.FileName)
}

// IsActive reports whether a live configuration exists.
func (p Project) IsActive() bool {
	_, err := os.Stat(p.LiveDescriptor())
	return err == nil
}

// ActiveName returns the name of the live instance, "" if none is live.
// The name is read from the live env file and falls back to the descriptor.
func (p Project) ActiveName() string {
	if !p.IsActive() {
		return ""
	}
	env, err := envfile.Load(p.LiveEnvFile())
	if err == nil && env[NameVar] != "" {
		return env[NameVar]
	}
	if d, err := descriptor.Load(p.LiveDescriptor()); err == nil {
		return d.Name
	}
	return ""
}

// InstanceNames returns the saved instances, sorted. A saved instance is a
// subdirectory of the configuration folder holding a descriptor or env file.
func (p Project) InstanceNames() ([]string, error) {
	entries, err := os.ReadDir(p.ConfigDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := p.InstanceDir(e.Name())
		if fileExists(filepath.Join(dir, descriptor.FileName)) || fileExists(filepath.Join(dir, EnvFileName)) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// TemplateNames returns the templates in the search path, sorted.
func (p Project) TemplateNames() ([]string, error) {
	entries, err := os.ReadDir(p.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid devcontainer name %q", name)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
