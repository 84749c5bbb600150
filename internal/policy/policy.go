package policy

import (
	"strings"

	"github.com/offlinegate/offlinegate/internal/types"
)

// Registry is an immutable, ordered set of forbidden patterns partitioned into
// binary-symbol and source-text categories.
type Registry struct {
	binary []string
	source []string
}

// New builds a registry from the given pattern lists. Empty strings and
// duplicates within a category are dropped; first occurrence wins.
func New(binary, source []string) *Registry {
	return &Registry{
		binary: dedupe(binary),
		source: dedupe(source),
	}
}

// Default returns the built-in offline policy.
func Default() *Registry {
	return New(defaultBinarySymbols, defaultSourceText)
}

// With returns a new registry with the extra patterns appended after the
// receiver's own. The receiver is left untouched.
func (r *Registry) With(extraBinary, extraSource []string) *Registry {
	b := append(append([]string(nil), r.binary...), extraBinary...)
	s := append(append([]string(nil), r.source...), extraSource...)
	return New(b, s)
}

// BinarySymbols returns a copy of the binary-symbol patterns in registry order.
func (r *Registry) BinarySymbols() []string {
	return append([]string(nil), r.binary...)
}

// SourceText returns a copy of the source-text patterns in registry order.
func (r *Registry) SourceText() []string {
	return append([]string(nil), r.source...)
}

// Patterns returns every pattern of the given category.
func (r *Registry) Patterns(cat types.Category) []types.Pattern {
	var list []string
	switch cat {
	case types.CatBinarySymbol:
		list = r.binary
	case types.CatSourceText:
		list = r.source
	}
	out := make([]types.Pattern, 0, len(list))
	for _, p := range list {
		out = append(out, types.Pattern{Text: p, Category: cat})
	}
	return out
}

// Find reports which patterns of cat occur in corpus, in registry order.
// Matching is exact, case-sensitive substring containment.
func (r *Registry) Find(cat types.Category, corpus string) []string {
	var list []string
	switch cat {
	case types.CatBinarySymbol:
		list = r.binary
	case types.CatSourceText:
		list = r.source
	}
	var found []string
	for _, p := range list {
		if strings.Contains(corpus, p) {
			found = append(found, p)
		}
	}
	return found
}

// Len returns the total number of patterns across both categories.
func (r *Registry) Len() int { return len(r.binary) + len(r.source) }

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// LineOf returns the first line of corpus containing pattern, trimmed, along
// with its 1-based line number. It returns ("", 0) when pattern is absent.
func LineOf(corpus, pattern string) (string, int) {
	idx := strings.Index(corpus, pattern)
	if idx < 0 {
		return "", 0
	}
	start := strings.LastIndexByte(corpus[:idx], '\n') + 1
	end := strings.IndexByte(corpus[idx:], '\n')
	if end < 0 {
		end = len(corpus)
	} else {
		end += idx
	}
	line := strings.Count(corpus[:idx], "\n") + 1
	return strings.TrimSpace(corpus[start:end]), line
}
