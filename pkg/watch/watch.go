// Package watch re-runs a callback whenever a watched source file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"minic/pkg/sources"
	"minic/pkg/utils"
)

// ChangeFunc receives the freshly loaded contents of a changed file.
type ChangeFunc func(f *sources.File)

// Watcher follows a set of files through their parent directories, so that
// editors which save by rename are still seen. Events are filtered to the
// registered files and deduplicated by content through the store.
type Watcher struct {
	store  *sources.Store
	logger *slog.Logger
	fsw    *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a watcher that reloads files through store.
func New(store *sources.Store, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &Watcher{
		store:  store,
		logger: logger,
		fsw:    fsw,
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
	}, nil
}

// Add registers path. Its directory must exist.
func (w *Watcher) Add(path string) error {
	full, dir, err := utils.GetPathInfo(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[full] = true
	return nil
}

// Files returns the number of registered files.
func (w *Watcher) Files() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

func (w *Watcher) watching(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(path)]
}

// Run delivers changes to onChange until ctx is cancelled, which is not an
// error. onChange runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if !w.watching(event.Name) {
				continue
			}
			w.handle(event, onChange)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, onChange ChangeFunc) {
	switch {
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		f, changed, err := w.store.Reload(event.Name)
		if err != nil {
			// Partially written or already replaced; the next event retries.
			w.logger.Debug("reload failed", "file", event.Name, "error", err)
			return
		}
		if !changed {
			w.logger.Debug("file unchanged", "file", event.Name, "op", event.Op.String())
			return
		}
		w.logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
		onChange(f)

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.logger.Info("file removed, waiting for it to reappear", "file", event.Name)
	}
}

// Close stops the underlying watcher; a running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
