// Package watch re-runs a callback when a file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/logger"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Func is called after the watched file settles.
type Func func(ctx context.Context) error

// Watcher watches a single file. The parent directory is watched so that
// editors replacing the file through a rename are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	fn       Func
	log      *logger.Logger
}

// New creates a Watcher for path. A zero debounce selects DefaultDebounce.
func New(path string, debounce time.Duration, fn Func, log *logger.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		fn:       fn,
		log:      log.Named("watch"),
	}
}

// Run blocks until ctx is cancelled. Callback errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.IO(errors.Wrap(err, "create file watcher"))
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return errors.IO(errors.Wrapf(err, "watch %s", dir))
	}

	w.log.Info("watching for changes", "file", w.path)

	// Armed only by matching events.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)

		case <-timer.C:
			if err := w.fn(ctx); err != nil {
				w.log.Error("rebuild failed", "error", err)
				continue
			}
		}
	}
}
