package settings

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the settings store when its backing file changes on
// disk, so edits made while the service runs take effect without a
// restart.
type Watcher struct {
	store *Store
}

func NewWatcher(store *Store) *Watcher {
	return &Watcher{store: store}
}

// Start watches the settings file's directory until ctx is canceled.
// Watching the directory instead of the file survives editors that
// replace the file by rename.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	target := filepath.Clean(w.store.Path())
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-watcher.Events:
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := w.store.Reload(); err != nil {
					log.Printf("settings reload skipped: %v", err)
					continue
				}
				log.Printf("settings reloaded: path=%s", target)
			case err := <-watcher.Errors:
				log.Printf("settings watcher error: %v", err)
			}
		}
	}()

	return watcher.Add(filepath.Dir(target))
}
