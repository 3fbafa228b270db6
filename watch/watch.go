// Package watch reruns a function whenever one of a fixed set of files
// changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a burst of events is collected before the
// function runs.
const DefaultDebounce = 300 * time.Millisecond

type Watcher struct {
	files    map[string]bool
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// New watches files. Their parent directories are watched so that editors
// that replace a file by renaming keep being followed.
func New(files []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("nothing to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{files: make(map[string]bool, len(files)), debounce: debounce, logger: logger, fsw: fsw}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run calls fn for each settled burst of changes until ctx is done. Errors
// from fn are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	defer w.fsw.Close()

	var (
		changed []string
		timer   *time.Timer
		fire    = make(chan struct{}, 1)
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("input changed", "path", ev.Name, "op", ev.Op.String())

			changed = append(changed, ev.Name)
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			w.logger.Info("regenerating", "changes", len(changed))
			changed = nil
			if err := fn(); err != nil {
				w.logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
