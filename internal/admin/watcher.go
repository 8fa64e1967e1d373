package admin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce absorbs the burst of events a single save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher triggers a reload when a file source changes. For a file it
// watches the parent directory, since spreadsheet editors replace the file
// on save; for a directory it reacts to any file in it.
type Watcher struct {
	path     string
	dir      string
	isDir    bool
	reloader *Reloader
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for path. It does not start watching until Run.
func NewWatcher(path string, r *Reloader, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		isDir:    info.IsDir(),
		reloader: r,
		debounce: debounce,
		watcher:  fw,
	}
	if w.isDir {
		w.dir = abs
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	return w, nil
}

// Run watches until ctx is cancelled. It closes the underlying watcher
// before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	slog.Info("watching source", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				slog.Debug("source changed", "path", event.Name, "op", event.Op.String())
				w.schedule(ctx)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	if w.isDir {
		return filepath.Ext(event.Name) == ".csv"
	}
	return filepath.Clean(event.Name) == w.path
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		// Errors are logged and recorded by the reloader.
		_, _ = w.reloader.Reload(ctx, "watch")
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
