package hooks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// ParseEnv parses "KEY=VALUE" strings (from -e flags) into a mapping.
// Returns an error if any entry doesn't contain "=" or has an empty key.
func ParseEnv(entries []string) (vars.Mapping, error) {
	result := vars.Mapping{}
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid env format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid env format %q: key cannot be empty", e)
		}
		result[key] = value
	}
	return result, nil
}

// ParseEnvWithStdin is ParseEnv where a value of "-" is read from stdin.
// Stdin is read once and assigned to every such key; it must be piped.
func ParseEnvWithStdin(entries []string, stdin *os.File) (vars.Mapping, error) {
	result, err := ParseEnv(entries)
	if err != nil {
		return nil, err
	}

	var stdinKeys []string
	for k, v := range result {
		if v == "-" {
			stdinKeys = append(stdinKeys, k)
		}
	}
	if len(stdinKeys) == 0 {
		return result, nil
	}

	content, err := readPiped(stdin)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
	}
	content = strings.TrimRight(content, "\r\n")
	for _, k := range stdinKeys {
		result[k] = content
	}
	return result, nil
}

// readPiped reads all of f unless it is a terminal.
func readPiped(f *os.File) (string, error) {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
