// Package watch re-runs the gate while a developer edits sources. It reports
// batches of changed eligible files after a quiet period; the gate itself
// stays a one-shot scan.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes is flushed.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes source roots recursively.
type Watcher struct {
	fsw      *fsnotify.Watcher
	exts     []string
	debounce time.Duration
}

// New watches every existing directory under roots. Missing roots are
// ignored so a watch over the default roots works in any checkout.
// Only files ending in one of exts are reported.
func New(roots, exts []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{fsw: fsw, exts: exts, debounce: debounce}
	for _, r := range roots {
		if err := w.addRecursive(r); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Dirs lists the directories currently watched, sorted.
func (w *Watcher) Dirs() []string {
	dirs := w.fsw.WatchList()
	sort.Strings(dirs)
	return dirs
}

func (w *Watcher) addRecursive(root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) eligible(p string) bool {
	for _, ext := range w.exts {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling onChange with the sorted set of
// eligible paths that changed since the previous call. Directories created
// under a root are watched as they appear.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(ev.Name)
					continue
				}
			}
			if ev.Op == fsnotify.Chmod || !w.eligible(ev.Name) {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(changed)
		}
	}
}

// Close releases the underlying inotify/kqueue handles.
func (w *Watcher) Close() error { return w.fsw.Close() }
