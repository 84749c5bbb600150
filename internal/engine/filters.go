package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// DefaultRoots are the application source roots scanned when none are given.
var DefaultRoots = []string{
	"WhisperApp/WhisperApp",
	"WhisperApp/Tests",
}

// DefaultExtensions are the file suffixes treated as application source or
// headers. Matching is case-sensitive.
var DefaultExtensions = []string{".swift", ".m", ".mm", ".h"}

func hasEligibleSuffix(name string, exts []string) bool {
	for _, e := range exts {
		if e != "" && strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// excludedByGlobs reports whether relPath (relative to its root) matches any
// exclude glob, either as a full slash path or by base name.
func excludedByGlobs(relPath string, globs []string) bool {
	if len(globs) == 0 {
		return false
	}
	rp := filepath.ToSlash(relPath)
	for _, g := range globs {
		g = strings.TrimPrefix(strings.TrimSpace(g), "./")
		if g == "" {
			continue
		}
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rp)); ok {
			return true
		}
	}
	return false
}
