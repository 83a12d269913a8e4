package placeholder

import (
	"regexp"
	"strings"

	"github.com/aniongithub/devcontainer-tools/internal/vars"
)

// placeholderRegex matches ${name}, ${name:default}, ${name:-default} and
// ${name?prompt} (also ${name:?prompt}). A quoted prompt may contain '}'.
// Nothing outside a quoted prompt may contain '{', so an unterminated
// placeholder never swallows the next one.
var placeholderRegex = regexp.MustCompile(`\$\{([^{}:?\n]+)(?::?\?("(?:[^"\\\n]|\\.)*"|[^{}\n]*)|(:-?)([^{}\n]*))?\}`)

// Substitute replaces placeholders in text with values from m.
// Undefined names are left as-is when passthroughUnknown is set; otherwise
// they resolve to their default, or to "".
func Substitute(text string, m vars.Mapping, passthroughUnknown bool) string {
	matches := placeholderRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range matches {
		start, end := loc[0], loc[1]
		if start > 0 && text[start-1] == '\\' {
			continue
		}
		b.WriteString(text[last:start])
		last = end

		name := text[loc[2]:loc[3]]
		if v, ok := m[name]; ok {
			b.WriteString(v)
			continue
		}
		if passthroughUnknown {
			b.WriteString(text[start:end])
			continue
		}
		// group 3 is the ':' or ':-' separator, group 4 the default
		if loc[6] >= 0 {
			b.WriteString(text[loc[8]:loc[9]])
		}
	}
	b.WriteString(text[last:])
	return b.String()
}

// Unresolved returns the distinct names of placeholders in text that m
// does not define and that carry no default, in order of first appearance.
// Escaped placeholders are skipped. These would render empty.
func Unresolved(text string, m vars.Mapping) []string {
	var names []string
	seen := map[string]bool{}
	for _, loc := range placeholderRegex.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == '\\' {
			continue
		}
		name := text[loc[2]:loc[3]]
		if loc[6] >= 0 || m.Has(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
