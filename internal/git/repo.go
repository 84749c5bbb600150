// Package git reads best-effort repository provenance so a verdict can be tied
// to the commit it was produced for. Nothing here affects the verdict.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Metadata identifies the repository state a scan ran against.
type Metadata struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// validateRoot validates and normalizes a repository root path.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// RepoMetadata returns provenance for root. Fields are left empty when git is
// missing or root is not inside a repository.
func RepoMetadata(root string) Metadata {
	var md Metadata
	validRoot, err := validateRoot(root)
	if err != nil {
		return md
	}
	run := func(args ...string) (string, bool) {
		out, err := exec.Command("git", append([]string{"-C", validRoot}, args...)...).Output()
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(string(out)), true
	}

	if s, ok := run("config", "--get", "remote.origin.url"); ok {
		md.Repo = shortRemote(s)
	}
	if s, ok := run("rev-parse", "HEAD"); ok {
		md.Commit = s
	}
	if s, ok := run("rev-parse", "--abbrev-ref", "HEAD"); ok {
		md.Branch = s
	}
	if md.Commit != "" {
		if s, ok := run("status", "--porcelain", "--untracked-files=no"); ok {
			md.Dirty = s != ""
		}
	}
	return md
}

// shortRemote trims a remote URL down to owner/name when possible.
func shortRemote(s string) string {
	s = strings.TrimSuffix(s, ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s, "://") {
		return s[i+1:]
	}
	return s
}
