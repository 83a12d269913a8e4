// Package replicate reproduces a directory tree at another location,
// optionally passing every file through a transform.
//
// Replication is best effort: a failure on one file is recorded and logged
// and the walk moves on. Re-running the same replication is the expected
// way to recover, so files that already exist are left alone unless
// Overwrite is set.
package replicate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"github.com/aniongithub/devcontainer-tools/internal/log"
)

// TransformFunc produces dst from src. It reports whether dst was written;
// returning false with a nil error means the file was deliberately skipped.
type TransformFunc func(src, dst string) (bool, error)

// Options control CopyTree.
type Options struct {
	Recurse    bool
	CreateDirs bool
	Overwrite  bool

	// Transform replaces the default byte copy when set. It is then
	// responsible for honoring Overwrite itself.
	Transform TransformFunc

	// Ignore holds extra .dockerignore style patterns, applied on top of
	// the source's own .devcontainerignore.
	Ignore []string
}

// DefaultOptions recurses, creates directories and never overwrites.
func DefaultOptions() Options {
	return Options{Recurse: true, CreateDirs: true}
}

// Result lists what a CopyTree call did, by path relative to the source.
type Result struct {
	Written  []string
	Skipped  []string
	Failures []*ReplicationIOError
}

// ReplicationIOError is a failure to replicate a single file.
// Err carries a stack trace; format with %+v to print it.
type ReplicationIOError struct {
	Src string
	Dst string
	Err error
}

func (e *ReplicationIOError) Error() string {
	return fmt.Sprintf("replicate %s: %v", e.Src, pkgerrors.Cause(e.Err))
}

func (e *ReplicationIOError) Unwrap() error {
	return e.Err
}

// Format prints the stack of the underlying error for %+v.
func (e *ReplicationIOError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "replicate %s -> %s: %+v", e.Src, e.Dst, e.Err)
		return
	}
	io.WriteString(s, e.Error())
}

// CopyTree replicates every regular file under src to the same relative
// path under dst. Per-file failures are collected in the Result; the
// returned error is only set when src cannot be walked or ctx is done.
func CopyTree(ctx context.Context, src, dst string, opts Options) (Result, error) {
	l := log.FromContext(ctx)
	var res Result

	files, err := List(src, opts)
	if err != nil {
		return res, err
	}

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		srcFile := filepath.Join(src, rel)
		dstFile := filepath.Join(dst, rel)

		written, err := copyOne(srcFile, dstFile, opts)
		if err != nil {
			rerr := &ReplicationIOError{Src: srcFile, Dst: dstFile, Err: pkgerrors.WithStack(err)}
			res.Failures = append(res.Failures, rerr)
			l.Warn("%v", rerr)
			l.Debug("replicate failure", "file", rel, "detail", fmt.Sprintf("%+v", rerr))
			continue
		}

		if written {
			res.Written = append(res.Written, rel)
		} else {
			res.Skipped = append(res.Skipped, rel)
		}
	}

	l.Debug("replicated tree", "src", src, "dst", dst,
		"written", len(res.Written), "skipped", len(res.Skipped), "failed", len(res.Failures))
	return res, nil
}

func copyOne(src, dst string, opts Options) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}

	if opts.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return false, err
		}
	}

	var written bool
	if opts.Transform != nil {
		written, err = opts.Transform(src, dst)
	} else {
		written, err = CopyFile(src, dst, opts.Overwrite)
	}
	if err != nil || !written {
		return written, err
	}

	return true, os.Chmod(dst, srcInfo.Mode().Perm())
}

// CopyFile copies src to dst byte for byte.
// Without overwrite an existing dst is left untouched and false is returned.
func CopyFile(src, dst string, overwrite bool) (bool, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst) // clean up partial dst
		return false, err
	}
	return true, dstFile.Close()
}
