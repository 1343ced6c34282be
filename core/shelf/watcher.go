package shelf

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ewhitby/pipekit/core/config"
	"github.com/ewhitby/pipekit/core/logger"
)

const debounceDelay = 500 * time.Millisecond

// Watcher mirrors the local shelf directory into the global one while an
// artist iterates on shelves. Events are debounced because Maya rewrites a
// shelf file several times on save.
type Watcher struct {
	cfg     config.Shelves
	watcher *fsnotify.Watcher
	timer   *time.Timer
}

func NewWatcher(cfg config.Shelves) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		cfg:     cfg,
		watcher: fsWatcher,
	}, nil
}

// Watch syncs once, then blocks mirroring shelf changes until the context is
// cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	localDir, err := DirFor(Local, w.cfg)
	if err != nil {
		return err
	}

	if err := w.watcher.Add(localDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", localDir, err)
	}

	if _, err := Sync(w.cfg); err != nil {
		logger.Error("Initial shelf sync failed: %v", err)
	}

	logger.Info("Watching %s for shelf changes", localDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !IsShelfFile(filepath.Base(event.Name)) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("Shelf event: %s %s", event.Op, event.Name)
				w.debounceSync()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) debounceSync() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		result, err := Sync(w.cfg)
		if err != nil {
			logger.Error("Shelf sync failed: %v", err)
			return
		}
		if len(result.Published) > 0 {
			logger.Info("Synced %d shelf file(s)", len(result.Published))
		}
	})
}

func (w *Watcher) Close() error {
	if w.timer != nil {
		w.timer.Stop()
	}
	return w.watcher.Close()
}
