// Package config handles loading and validation of devcontainer configuration.
//
// Configuration is read from ~/.config/devcontainer/config.toml (or the
// file named by DEVCONTAINER_CONFIG) and may be overridden per project by a
// .devcontainer.toml file in the project context.
//
// # Configuration Sources (highest priority first)
//
//   - command line flags (--templates, --disable-hooks, ...)
//   - DEVCONTAINER_TEMPLATES env var: template search path
//   - project .devcontainer.toml
//   - global config file
//   - default values
//
// # Key Settings
//
//   - templates_dir: where templates live (default: "templates" next to the executable)
//   - compose.command: orchestrator command line (default: "docker compose")
//   - hooks.persist_answers: save prompted hook variables to the hook's .env file
//   - hooks.timeout: upper bound for a single hook run (default: none)
//   - defaults.*: default values for "devcontainer init" flags
//   - log.file: rotated JSON debug log
//
// # Path Validation
//
// Global paths must be absolute or start with ~. Paths in a project file
// may be relative and are resolved against the project context.
package config
