package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/offlinegate/offlinegate/internal/types"
)

// Walk traverses root in lexical order and invokes handle with the content of
// each eligible file. A symlinked root is followed; reported paths stay under
// root as given. Files and directories that cannot be read are reported
// through skip and otherwise ignored. Walk only returns an error when ctx is
// done.
func Walk(ctx context.Context, root string, cfg Config, handle func(path string, data []byte), skip func(types.Diagnostic)) error {
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	top := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		top = resolved
	}
	return filepath.WalkDir(top, func(walked string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, _ := filepath.Rel(top, walked)
		p := filepath.Join(root, rel)
		if err != nil {
			skip(readError(p, err))
			return nil
		}
		if d.IsDir() {
			if walked != top && excludedByGlobs(rel, cfg.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasEligibleSuffix(d.Name(), exts) {
			return nil
		}
		regular, err := isRegular(p, d)
		if err != nil {
			skip(readError(p, err))
			return nil
		}
		if !regular {
			return nil
		}
		if excludedByGlobs(rel, cfg.ExcludeGlobs) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if info, err := os.Stat(p); err == nil && info.Size() > cfg.MaxBytes {
				skip(types.Diagnostic{
					Level:   types.LevelWarning,
					Kind:    types.DiagFileReadError,
					Path:    p,
					Message: fmt.Sprintf("could not read %s: larger than %d bytes", p, cfg.MaxBytes),
				})
				return nil
			}
		}
		b, err := os.ReadFile(p)
		if err != nil {
			skip(readError(p, err))
			return nil
		}
		if !utf8.Valid(b) {
			skip(types.Diagnostic{
				Level:   types.LevelWarning,
				Kind:    types.DiagFileReadError,
				Path:    p,
				Message: fmt.Sprintf("could not read %s: content is not valid UTF-8", p),
			})
			return nil
		}
		handle(p, b)
		return nil
	})
}

// isRegular accepts regular files and symlinks that resolve to one. A
// symlink whose target cannot be resolved is an error, not a silent skip.
func isRegular(p string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(p)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func readError(p string, err error) types.Diagnostic {
	return types.Diagnostic{
		Level:   types.LevelWarning,
		Kind:    types.DiagFileReadError,
		Path:    p,
		Message: fmt.Sprintf("could not read %s: %v", p, err),
	}
}
