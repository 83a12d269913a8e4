// Package suggest finds "did you mean" candidates for mistyped names.
package suggest

import (
	"slices"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

// Max is the number of suggestions returned.
const Max = 3

// Names returns up to Max candidates similar to name, best first.
//
// Candidates containing name as a fuzzy subsequence rank first, followed by
// candidates within a small edit distance (typos), then candidates that are
// themselves a subsequence of name (e.g. "default" for "default-old").
func Names(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	var out []string
	add := func(s string) {
		if s != name && !slices.Contains(out, s) && len(out) < Max {
			out = append(out, s)
		}
	}

	for _, m := range fuzzy.Find(name, candidates) {
		add(m.Str)
	}
	for _, c := range candidates {
		if levenshtein.ComputeDistance(name, c) <= maxDistance(name) {
			add(c)
		}
	}
	for _, c := range candidates {
		if len(fuzzy.Find(c, []string{name})) > 0 {
			add(c)
		}
	}
	return out
}

func maxDistance(s string) int {
	if len(s) <= 4 {
		return 1
	}
	return 2
}
