// Package compose drives the docker compose CLI for the live devcontainer.
//
// Every command runs in the configuration directory with one -f per compose
// file named by the live descriptor and --env-file pointing at the live .env,
// so the CLI sees exactly what activation wrote. The compose command itself
// is configurable ("docker compose", "docker-compose", "podman compose") and
// is split with shell quoting rules.
//
// Project loads the compose files with compose-go to resolve the project
// name the CLI would use and to validate the files.
package compose
