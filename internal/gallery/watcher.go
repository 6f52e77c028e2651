package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher rewrites a gallery whenever PNG files in its directory change.
type Watcher struct {
	dir      string
	opts     Options
	logger   *slog.Logger
	debounce time.Duration

	// OnWrite, if set, is called with the path of every written gallery.
	OnWrite func(path string)
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, opts Options, logger *slog.Logger) *Watcher {
	return &Watcher{
		dir:      dir,
		opts:     opts,
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// SetDebounce changes the settle delay.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run writes the gallery once and then again after each burst of PNG
// changes, until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", w.dir, err)
	}
	w.logger.Info("watching folder", "dir", w.dir)

	if err := w.write(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !isPNG(filepath.Base(event.Name)) || !relevant(event.Op) {
				continue
			}
			w.logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			// A broken file shows up as an error but does not stop watching.
			if err := w.write(ctx); err != nil {
				w.logger.Error("failed to rebuild gallery", "error", err)
			}
		}
	}
}

func (w *Watcher) write(ctx context.Context) error {
	path, err := Write(ctx, w.dir, w.opts)
	if err != nil {
		return err
	}
	w.logger.Info("gallery written", "path", path)
	if w.OnWrite != nil {
		w.OnWrite(path)
	}
	return nil
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
