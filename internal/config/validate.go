package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidShutdownActions = []string{"none", "stopCompose", "stopContainer"}
	ValidThemeModes      = []string{"auto", "light", "dark"}
)

// Validate checks enum fields and numeric ranges.
func (c *Config) Validate() error {
	if err := ValidateShutdownAction(c.Defaults.ShutdownAction); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes); err != nil {
		return err
	}
	if c.Compose.StopTimeout < 0 {
		return fmt.Errorf("invalid compose.stop_timeout %d: must not be negative", c.Compose.StopTimeout)
	}
	if c.Hooks.Timeout < 0 {
		return fmt.Errorf("invalid hooks.timeout %s: must not be negative", c.Hooks.Timeout)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("invalid log settings: max_size_mb and max_backups must not be negative")
	}
	if strings.ContainsAny(c.Folder, `/\`) {
		return fmt.Errorf("invalid folder %q: must be a single directory name", c.Folder)
	}
	return nil
}

// ValidateShutdownAction validates a shutdown action value.
// Exported for use in CLI flag validation.
func ValidateShutdownAction(action string) error {
	return validateEnum(action, "shutdown action", ValidShutdownActions)
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" || strings.HasPrefix(path, "~") {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
