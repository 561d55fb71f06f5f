package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces editor save bursts into one re-run.
const watchDebounce = 250 * time.Millisecond

// Watch re-runs the given function whenever an analyzable file under
// dir changes. It runs once immediately, then blocks until the context
// is canceled. Run errors are delivered to onErr and do not stop the
// watch.
func Watch(ctx context.Context, dir string, extensions, excludes []string, run func(context.Context) error, onErr func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchTree(watcher, dir, excludes); err != nil {
		return err
	}

	if len(extensions) == 0 {
		extensions = []string{".klar"}
	}

	if err := run(ctx); err != nil {
		onErr(err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watches.
			if ev.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if !isExcluded(relTo(dir, ev.Name), filepath.Base(ev.Name), excludes) {
						_ = addWatchTree(watcher, ev.Name, excludes)
					}
					continue
				}
			}
			if !matchesExt(ev.Name, extensions) {
				continue
			}
			if isExcluded(relTo(dir, ev.Name), filepath.Base(ev.Name), excludes) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := run(ctx); err != nil {
				onErr(err)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onErr(werr)
		}
	}
}

// addWatchTree registers dir and every non-excluded subdirectory.
func addWatchTree(w *fsnotify.Watcher, dir string, excludes []string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isExcluded(relTo(dir, path), d.Name(), excludes) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func matchesExt(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
