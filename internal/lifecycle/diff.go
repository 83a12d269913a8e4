package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/aniongithub/devcontainer-tools/internal/envfile"
	"github.com/aniongithub/devcontainer-tools/internal/placeholder"
	"github.com/aniongithub/devcontainer-tools/internal/replicate"
	"github.com/aniongithub/devcontainer-tools/internal/suggest"
)

// Diff returns a unified diff from the live files to the saved instance
// rendered with the live env: what "activate --discard-changes" would
// write. name "" means the live instance. The env file is not compared
// since activation regenerates it. An empty string means no differences.
func (o *Orchestrator) Diff(ctx context.Context, name string) (string, error) {
	p := o.Project
	if !p.IsActive() {
		return "", &InstanceNotFoundError{}
	}
	if name == "" {
		name = p.ActiveName()
	}
	instanceDir := p.InstanceDir(name)
	if validName(name) != nil || !dirExists(instanceDir) {
		names, _ := p.InstanceNames()
		return "", &InstanceNotFoundError{Name: name, Suggestions: suggest.Names(name, names)}
	}

	env := envfile.LoadOrEmpty(ctx, p.LiveEnvFile())
	files, err := replicate.List(instanceDir, replicate.DefaultOptions())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, r := range files {
		if r == EnvFileName {
			continue
		}
		want, err := replicate.Render(filepath.Join(instanceDir, filepath.FromSlash(r)), env, true)
		if err != nil {
			return "", err
		}
		have, err := os.ReadFile(filepath.Join(p.ConfigDir, filepath.FromSlash(r)))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if string(have) == string(want) {
			continue
		}
		if placeholder.IsBinary(have) || placeholder.IsBinary(want) {
			fmt.Fprintf(&b, "Binary files live/%s and %s/%s differ\n", r, name, r)
			continue
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(have)),
			B:        difflib.SplitLines(string(want)),
			FromFile: "live/" + r,
			ToFile:   name + "/" + r,
			Context:  3,
		})
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
