package storage

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called after the backing file was changed by another program.
type ChangeCallback func()

const watchDebounce = 100 * time.Millisecond

// WatchFile watches the directory holding f's file and calls cb when the
// file changes in a way f did not cause itself. Bursts of events are
// debounced. It blocks until ctx is cancelled.
//
// The directory is watched rather than the file because atomic writes
// replace the file's inode on every save.
func WatchFile(ctx context.Context, f *File, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(f.Path())
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("file", f.Path()))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			data, readErr := os.ReadFile(f.Path())
			if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
				logger.Warn("watcher: read failed", slog.String("error", readErr.Error()))
				continue
			}
			if f.Written(data) {
				continue
			}
			logger.Debug("watcher: external change", slog.String("file", f.Path()))
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.Path() {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
