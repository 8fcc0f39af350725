// Package watcher reports changes to a set of files, debounced per file.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches files for changes and triggers callbacks. Parent directories
// are watched so that editors replacing a file on save are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]bool
	timers    map[string]*time.Timer
}

// New creates a watcher. A nil logger discards watcher errors.
func New(debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		watcher:   w,
		logger:    logger,
		debounce:  debounce,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]bool),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Watch registers callback for each of files
func (w *Watcher) Watch(files []string, callback func(string)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if !w.dirs[dir] {
			if err := w.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.dirs[dir] = true
		}

		w.callbacks[absPath] = callback
	}

	return nil
}

// Run delivers change notifications until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.changed(filepath.Clean(event.Name))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// changed restarts the debounce timer of a watched file
func (w *Watcher) changed(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	callback, exists := w.callbacks[path]
	if !exists {
		return
	}

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.logger.Debug("file changed", "path", path)
		callback(path)
	})
}

// Close stops the watcher and pending callbacks
func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()
	return w.watcher.Close()
}
