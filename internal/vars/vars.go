// Package vars holds variable mappings and the layering rules used to
// combine them.
//
// A Mapping is a flat set of name to value pairs. Several mappings of
// different provenance (template defaults, hook override files, host
// identity, the process environment) are combined with Merge, where a
// later layer always wins over an earlier one for the same key.
package vars

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// Mapping is a case-sensitive variable name to value map.
type Mapping map[string]string

// Merge returns a new mapping built from base with each override applied
// in order. For a key present in several layers the last one wins.
// Neither base nor the overrides are modified.
func Merge(base Mapping, overrides ...Mapping) Mapping {
	size := len(base)
	for _, o := range overrides {
		size += len(o)
	}
	out := make(Mapping, size)
	maps.Copy(out, base)
	for _, o := range overrides {
		maps.Copy(out, o)
	}
	return out
}

// MergeInPlace replaces the contents of dst with Merge(dst, overrides...).
// Callers holding a reference to dst observe the merged result.
func MergeInPlace(dst Mapping, overrides ...Mapping) {
	for _, o := range overrides {
		maps.Copy(dst, o)
	}
}

// Clone returns a shallow copy. A nil mapping clones to an empty one.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	maps.Copy(out, m)
	return out
}

// Keys returns the mapping's keys in sorted order.
func (m Mapping) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Has reports whether key is defined, even with an empty value.
func (m Mapping) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Environ renders the mapping as sorted KEY=VALUE pairs suitable for
// exec.Cmd.Env.
func (m Mapping) Environ() []string {
	env := make([]string, 0, len(m))
	for _, k := range m.Keys() {
		env = append(env, k+"="+m[k])
	}
	return env
}

// FromEnviron parses KEY=VALUE pairs such as os.Environ output.
// Entries without '=' are ignored.
func FromEnviron(environ []string) Mapping {
	m := make(Mapping, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	return m
}

// HostEnv snapshots the process environment as a mapping layer.
func HostEnv() Mapping {
	return FromEnviron(os.Environ())
}
