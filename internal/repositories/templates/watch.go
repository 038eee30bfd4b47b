package templates

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 250 * time.Millisecond

// Watcher reloads the catalog when its file changes on disk. Editors
// often emit several events per save, so reloads are debounced.
type Watcher struct {
	watcher *fsnotify.Watcher
	repo    Repository
	path    string
}

// NewWatcher watches the catalog file behind a repository. Watching the
// directory rather than the file survives rename-style saves.
func NewWatcher(path string, repo Repository) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher: fw,
		repo:    repo,
		path:    path,
	}, nil
}

// Run blocks, reloading on file changes, until ctx is canceled
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			out, err := w.repo.Reload(ctx, ReloadInput{})
			if err != nil {
				slog.Error("catalog reload failed, previous catalog stays live",
					"path", w.path,
					"error", err,
				)
				continue
			}
			slog.Info("catalog reloaded",
				"path", w.path,
				"templates", out.Count,
			)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("catalog watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// Close stops the underlying filesystem watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
