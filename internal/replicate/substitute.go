package replicate

import (
	"errors"
	"io/fs"
	"os"

	"github.com/aniongithub/devcontainer-tools/internal/placeholder"
	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// Substitution returns a transform that resolves placeholders in every
// text file against m. Binary files are copied unchanged. An existing
// destination is only replaced when overwrite is set.
func Substitution(m vars.Mapping, passthrough, overwrite bool) TransformFunc {
	return func(src, dst string) (bool, error) {
		if !overwrite {
			if _, err := os.Lstat(dst); err == nil {
				return false, nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return false, err
			}
		}

		data, err := Render(src, m, passthrough)
		if err != nil {
			return false, err
		}
		return true, writeFile(dst, data)
	}
}

// Render returns the content Substitution would write for src.
func Render(src string, m vars.Mapping, passthrough bool) ([]byte, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	if placeholder.IsBinary(data) {
		return data, nil
	}
	return []byte(placeholder.Substitute(string(data), m, passthrough)), nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
