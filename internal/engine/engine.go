package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/types"
)

// Config controls which files the source scan reads.
type Config struct {
	// Roots are scanned in order; missing roots are skipped.
	Roots []string
	// Extensions are the eligible file suffixes; empty means DefaultExtensions.
	Extensions []string
	// ExcludeGlobs are doublestar patterns matched against root-relative paths.
	ExcludeGlobs []string
	// MaxBytes skips larger files with a warning when > 0.
	MaxBytes int64
}

// Scan walks every root and matches eligible files against the registry's
// source-text patterns. Each file contributes at most one Match per distinct
// pattern, in registry order. The scan never fails; a cancelled ctx stops the
// walk early and is recorded as a warning.
func Scan(ctx context.Context, cfg Config, reg *policy.Registry) types.ScanResult {
	var (
		matches []types.Match
		diags   []types.Diagnostic
		stats   types.Stats
	)
	skip := func(d types.Diagnostic) {
		stats.FilesSkipped++
		diags = append(diags, d)
	}
	handle := func(p string, data []byte) {
		stats.FilesScanned++
		matches = append(matches, matchFile(reg, p, string(data))...)
	}

	for _, root := range cfg.Roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			diags = append(diags, types.Diagnostic{
				Level:   types.LevelInfo,
				Kind:    types.DiagRootMissing,
				Path:    root,
				Message: fmt.Sprintf("source root %s not found; skipped", root),
			})
			continue
		}
		if err := Walk(ctx, root, cfg, handle, skip); err != nil {
			diags = append(diags, types.Diagnostic{
				Level:   types.LevelWarning,
				Kind:    types.DiagCancelled,
				Path:    root,
				Message: fmt.Sprintf("source scan stopped: %v", err),
			})
			break
		}
	}

	return types.NewScanResult(types.ScanSource, matches, diags, stats)
}

func matchFile(reg *policy.Registry, path, content string) []types.Match {
	found := reg.Find(types.CatSourceText, content)
	if len(found) == 0 {
		return nil
	}
	out := make([]types.Match, 0, len(found))
	for _, p := range found {
		text, line := policy.LineOf(content, p)
		out = append(out, types.Match{
			Pattern:  p,
			Category: types.CatSourceText,
			Path:     path,
			Line:     line,
			Location: text,
		})
	}
	return out
}
