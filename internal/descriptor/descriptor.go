// Package descriptor reads devcontainer.json files.
//
// Descriptors are JSON with comments and trailing commas (JSONC), as
// written by editors; they are standardized with hujson before decoding.
package descriptor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// FileName is the descriptor file name inside a configuration directory.
const FileName = "devcontainer.json"

// DefaultComposeFile is used when the descriptor names no compose file.
const DefaultComposeFile = "docker-compose.yml"

// Descriptor is the subset of devcontainer.json this tool consumes.
type Descriptor struct {
	Name              string            `json:"name"`
	Context           string            `json:"context,omitempty"`
	WorkspaceFolder   string            `json:"workspaceFolder,omitempty"`
	DockerComposeFile ComposeFiles      `json:"dockerComposeFile,omitempty"`
	Service           string            `json:"service,omitempty"`
	ShutdownAction    string            `json:"shutdownAction,omitempty"`
	RemoteEnv         map[string]string `json:"remoteEnv,omitempty"`
	Settings          map[string]any    `json:"settings,omitempty"`

	// Active is set for the live descriptor. Never read from or written to disk.
	Active bool `json:"-"`
}

// ComposeFiles is dockerComposeFile: a single path or a list of paths.
type ComposeFiles []string

// UnmarshalJSON accepts a string or an array of strings.
func (c *ComposeFiles) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = ComposeFiles{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("dockerComposeFile must be a string or a list of strings")
	}
	*c = list
	return nil
}

// MarshalJSON writes a single file as a plain string.
func (c ComposeFiles) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// Load reads and decodes the descriptor at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse decodes JSONC descriptor data. name is used in error messages.
func Parse(data []byte, name string) (*Descriptor, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	var d Descriptor
	if err := json.Unmarshal(std, &d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &d, nil
}

// ComposeFiles returns the compose files, defaulting to docker-compose.yml.
func (d *Descriptor) ComposeFiles() []string {
	if len(d.DockerComposeFile) == 0 {
		return []string{DefaultComposeFile}
	}
	return d.DockerComposeFile
}

// Shell returns the default Linux terminal shell configured in settings:
// the path of the terminal.integrated.defaultProfile.linux profile, else the
// legacy terminal.integrated.shell.linux. "" when neither is set.
func (d *Descriptor) Shell() string {
	if name, ok := d.Settings["terminal.integrated.defaultProfile.linux"].(string); ok {
		profiles, _ := d.Settings["terminal.integrated.profiles.linux"].(map[string]any)
		profile, _ := profiles[name].(map[string]any)
		if path, ok := profile["path"].(string); ok && path != "" {
			return path
		}
	}
	shell, _ := d.Settings["terminal.integrated.shell.linux"].(string)
	return shell
}
