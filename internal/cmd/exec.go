package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aniongithub/devcontainer-tools/internal/log"
)

// waitDelay bounds how long Wait blocks on output pipes after the child
// exited or was killed (e.g. a background grandchild keeping stdout open).
const waitDelay = 5 * time.Second

// RunContext executes a command and returns stderr in the error message if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	return nil
}

// OutputContext executes a command and returns stdout, with stderr in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	out, err := c.Output()
	done(time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return out, nil
}

// Stream configures StreamContext.
type Stream struct {
	Dir   string
	Env   []string  // nil inherits the process environment
	Stdin io.Reader // nil = no input
	// Stdout and Stderr receive each output line without its trailing
	// newline. A nil callback discards the stream.
	Stdout func(line string)
	Stderr func(line string)
}

// StreamContext runs a command and delivers stdout and stderr line by line
// while it runs. Both streams are pumped concurrently.
func StreamContext(ctx context.Context, s Stream, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = s.Dir
	c.Env = s.Env
	c.Stdin = s.Stdin
	c.WaitDelay = waitDelay

	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	c.Stdout = outW
	c.Stderr = errW

	var g errgroup.Group
	g.Go(func() error { return pumpLines(outR, s.Stdout) })
	g.Go(func() error { return pumpLines(errR, s.Stderr) })

	done := log.FromContext(ctx).Command(s.Dir, name, args...)
	start := time.Now()
	runErr := c.Run()
	done(time.Since(start))

	outW.Close()
	errW.Close()
	pumpErr := g.Wait()

	if runErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return runErr
	}
	return pumpErr
}

// InteractiveContext runs a command attached to the terminal of this process.
func InteractiveContext(ctx context.Context, dir, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// ExitCode extracts the exit code from an error returned by this package.
// Returns -1 when err carries no exit status, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// pumpLines reads r until EOF and calls fn for each line.
// Lines have no length limit; a final line without newline is delivered too.
func pumpLines(r io.Reader, fn func(string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && fn != nil {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
