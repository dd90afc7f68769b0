package preview

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watcher reports changes of a single file. Directory is watched rather than
// file itself, editors often replace files by renaming temporary ones.
type watcher struct {
	fsw      *fsnotify.Watcher
	file     string
	debounce time.Duration
	log      *zap.Logger
}

func newWatcher(path string, debounce time.Duration, log *zap.Logger) (*watcher, error) {
	file, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(file)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &watcher{fsw: fsw, file: file, debounce: debounce, log: log}, nil
}

func (w *watcher) close() {
	if err := w.fsw.Close(); err != nil {
		w.log.Warn("Unable to stop file watcher", zap.Error(err))
	}
}

// run calls onChange once per burst of changes: after debounce interval
// passes without further events. It returns when context is cancelled or
// watcher is closed.
func (w *watcher) run(ctx context.Context, onChange func()) {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("Source change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("Watcher error", zap.Error(err))

		case <-timer.C:
			onChange()
		}
	}
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.file {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
