// Package cmd provides helpers for executing external commands with proper error handling.
//
// All helpers take a context: cancelling it kills the child and the helper
// returns ctx.Err(). Every invocation is logged through the context logger
// (see [log.Logger.Command]).
//
// # Usage
//
//	// Capture stderr into the error:
//	err := cmd.RunContext(ctx, dir, "docker", "info")
//
//	// Capture stdout:
//	out, err := cmd.OutputContext(ctx, dir, "id", "-u")
//
//	// Stream output line by line (hooks, docker compose up):
//	err := cmd.StreamContext(ctx, cmd.Stream{Dir: dir, Stdout: onLine}, "docker", "compose", "up")
//
//	// Hand the terminal to the child (docker compose run, docker exec):
//	err := cmd.InteractiveContext(ctx, dir, "docker", "exec", "-it", id, "bash")
//
// Errors from StreamContext and InteractiveContext keep the *exec.ExitError
// so callers can read the exit code.
package cmd
