package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/plexlevi/webcorder/internal/logging"
)

// DefaultWatchDebounce is how long the watcher waits for writes to settle
const DefaultWatchDebounce = 250 * time.Millisecond

// Watcher reports changes to a single settings file.
// The parent directory is watched because editors often replace files
// through rename instead of writing in place.
type Watcher struct {
	debounce time.Duration
	file     string
	onChange func()
	watcher  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a Watcher for file. onChange runs on its own goroutine
// once writes have been quiet for debounce.
func NewWatcher(file string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		debounce: debounce,
		file:     filepath.Clean(file),
		onChange: onChange,
		watcher:  fw,
	}, nil
}

// Start processes file events until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) {
	defer w.Close()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			logging.Logger.Debug("Settings file event", "file", event.Name, "op", event.Op.String())
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Logger.Error("Settings watcher error", "error", err)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		logging.Logger.Info("Settings changed", "file", w.file)
		w.onChange()
	})
}

// Close stops the watcher and any pending notification
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
