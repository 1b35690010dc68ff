package server

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"worldfeed/internal/logging"
)

// exportWatcher triggers a new load cycle whenever the export file is
// regenerated. The exporter writes via rename, so Create and Rename events
// matter as much as Write.
type exportWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func watchExport(path string, reload func(), logger *slog.Logger) (*exportWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: rename-into-place replaces the file inode and
	// drops a watch attached to the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &exportWatcher{watcher: watcher, done: make(chan struct{})}
	target := filepath.Clean(path)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				logger.Debug("export changed", logging.String("op", event.Op.String()))
				reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("export watch error", logging.Error(err))
			case <-w.done:
				return
			}
		}
	}()

	return w, nil
}

func (w *exportWatcher) close() {
	close(w.done)
	_ = w.watcher.Close()
}
