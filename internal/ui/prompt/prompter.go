package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// ErrNonInteractive is returned by Disabled.
var ErrNonInteractive = errors.New("input required but prompting is disabled")

// Request describes one value to ask for.
type Request struct {
	Name    string // variable name
	Message string // text shown to the user
	Secret  bool   // mask input
}

// Prompter asks the user for a single value.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (string, error)
}

// LooksSecret reports whether a variable name suggests a credential.
func LooksSecret(name string) bool {
	upper := strings.ToUpper(name)
	for _, s := range []string{"PASSWORD", "PASSWD", "SECRET", "TOKEN", "API_KEY", "PRIVATE_KEY"} {
		if strings.Contains(upper, s) {
			return true
		}
	}
	return false
}

// Auto picks TUI when stdin and stderr are terminals and Line otherwise.
func Auto() Prompter {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd()) {
		return TUI{}
	}
	return &Line{In: os.Stdin, Out: os.Stderr}
}

// Line reads answers one line at a time.
// Secret values are read without echo when In is a terminal.
type Line struct {
	In  io.Reader
	Out io.Writer

	once   sync.Once
	reader *bufio.Reader
}

// Prompt writes "<message> > " and reads one line.
func (p *Line) Prompt(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.once.Do(func() { p.reader = bufio.NewReader(p.In) })

	fmt.Fprintf(p.Out, "%s > ", req.Message)

	if f, ok := p.In.(*os.File); ok && req.Secret && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Scripted answers from a fixed map and records what was asked.
type Scripted struct {
	Answers map[string]string

	mu    sync.Mutex
	asked []string
}

// Prompt returns the scripted answer for req.Name.
func (s *Scripted) Prompt(_ context.Context, req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, req.Name)
	v, ok := s.Answers[req.Name]
	if !ok {
		return "", fmt.Errorf("no scripted answer for %s", req.Name)
	}
	return v, nil
}

// Asked returns the variable names prompted so far, in order.
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Disabled refuses every prompt.
type Disabled struct{}

func (Disabled) Prompt(_ context.Context, req Request) (string, error) {
	return "", fmt.Errorf("%s: %w", req.Name, ErrNonInteractive)
}
