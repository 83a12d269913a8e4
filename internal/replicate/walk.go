package replicate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	"github.com/moby/patternmatcher/ignorefile"
)

// IgnoreFile is read from the root of a source tree; it is never copied.
const IgnoreFile = ".devcontainerignore"

// List returns the slash-separated relative paths of the files CopyTree
// would replicate from src, in lexical order.
func List(src string, opts Options) ([]string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "replicate", Path: src, Err: errors.New("not a directory")}
	}

	matcher, err := loadIgnore(src, opts.Ignore)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == src {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !opts.Recurse {
				return filepath.SkipDir
			}
			if ignored(matcher, rel) && !matcher.Exclusions() {
				return filepath.SkipDir
			}
			return nil
		}

		if rel == IgnoreFile || ignored(matcher, rel) {
			return nil
		}

		// symlinks count when they point at a regular file
		fi, err := os.Stat(p)
		if err != nil || !fi.Mode().IsRegular() {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

func loadIgnore(src string, extra []string) (*patternmatcher.PatternMatcher, error) {
	var patterns []string
	if f, err := os.Open(filepath.Join(src, IgnoreFile)); err == nil {
		p, err := ignorefile.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		patterns = p
	}
	patterns = append(patterns, extra...)
	return patternmatcher.New(patterns)
}

func ignored(m *patternmatcher.PatternMatcher, rel string) bool {
	if m == nil {
		return false
	}
	ok, err := m.MatchesOrParentMatches(strings.TrimPrefix(rel, "./"))
	return err == nil && ok
}
