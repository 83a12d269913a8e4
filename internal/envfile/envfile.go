// Package envfile reads and writes flat KEY=VALUE dotenv files.
//
// The format is deliberately minimal: one pair per line, no quoting and no
// escaping. Blank lines and lines starting with '#' are ignored on read.
// Writes emit keys in sorted order so that re-running the same operation
// produces byte-identical files.
package envfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aniongithub/devcontainer-tools/internal/log"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// ConfigFormatError reports a line that is not a KEY=VALUE pair.
type ConfigFormatError struct {
	Path string
	Line int
	Text string
}

func (e *ConfigFormatError) Error() string {
	return fmt.Sprintf("%s:%d: malformed env line %q (want KEY=VALUE)", e.Path, e.Line, e.Text)
}

// Load parses the env file at path.
// A missing file yields an empty mapping and no error. The first malformed
// line aborts the load with a *ConfigFormatError.
func Load(path string) (vars.Mapping, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return vars.Mapping{}, nil
	}
	if err != nil {
		return nil, err
	}
	return parse(path, data)
}

func parse(path string, data []byte) (vars.Mapping, error) {
	m := vars.Mapping{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSuffix(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, &ConfigFormatError{Path: path, Line: n, Text: line}
		}
		m[k] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadOrEmpty loads path and treats any failure as "no variables",
// logging the cause.
func LoadOrEmpty(ctx context.Context, path string) vars.Mapping {
	m, err := Load(path)
	if err != nil {
		log.FromContext(ctx).Warn("ignoring %s: %v", path, err)
		return vars.Mapping{}
	}
	return m
}

// Write replaces the file at path with m, one KEY=VALUE line per entry.
// The file is written to a temp file and renamed into place; an existing
// file keeps its permission bits.
func Write(m vars.Mapping, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, encode(m), mode); err != nil {
		return err
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return err
	}
	return os.Rename(tempPath, path)
}

// Append adds m's entries to the end of the file, creating it if needed.
func Append(m vars.Mapping, path string) error {
	if len(m) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	data := encode(m)
	if info, err := f.Stat(); err == nil && info.Size() > 0 && !endsWithNewline(path, info.Size()) {
		data = append([]byte("\n"), data...)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CreateOrMerge writes m to path, or, if the file exists, merges m beneath
// the existing contents so values already in the file win.
func CreateOrMerge(m vars.Mapping, path string) error {
	existing, err := Load(path)
	if err != nil {
		return err
	}
	return Write(vars.Merge(m, existing), path)
}

// CreateOrUpdate is CreateOrMerge with the opposite precedence: values in
// m replace those already in the file.
func CreateOrUpdate(m vars.Mapping, path string) error {
	existing, err := Load(path)
	if err != nil {
		return err
	}
	return Write(vars.Merge(existing, m), path)
}

func encode(m vars.Mapping) []byte {
	var b bytes.Buffer
	for _, k := range m.Keys() {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m[k])
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func endsWithNewline(path string, size int64) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()
	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, size-1); err != nil {
		return true
	}
	return buf[0] == '\n'
}
