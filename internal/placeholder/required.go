package placeholder

import (
	"regexp"
	"strconv"
	"strings"
)

// requiredRegex matches ${VAR?"prompt"} and ${VAR:?"prompt"}.
var requiredRegex = regexp.MustCompile(`\$\{(\w+):?\?("[^"\\]*(?:\\.[^"\\]*)*")`)

// Required is a variable a hook asks the user for.
type Required struct {
	Name   string
	Prompt string
}

// RequiredVariables returns the distinct required-variable markers in text,
// in order of first appearance. The prompt is unquoted; a prompt that is
// not a valid Go string literal has only its surrounding quotes and \"
// escapes removed.
func RequiredVariables(text string) []Required {
	var out []Required
	seen := map[string]bool{}
	for _, m := range requiredRegex.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Required{Name: name, Prompt: unquote(m[2])})
	}
	return out
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
	return strings.ReplaceAll(s, `\"`, `"`)
}
