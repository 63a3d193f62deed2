package replay

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tgcore/internal/logger"
)

// Watch reloads the cassette whenever its file is written or replaced,
// until ctx is done. Reload errors are logged and the previous cassette
// stays in use. The returned channel receives the outcome of each reload.
func (t *Transport) Watch(ctx context.Context) (<-chan error, error) {
	if t.path == "" {
		return nil, fmt.Errorf("watch: cassette has no file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", t.path, err)
	}

	reloads := make(chan error, 1)
	target := filepath.Clean(t.path)

	go func() {
		defer close(reloads)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				err := t.Reload()
				if err != nil {
					logger.Warn("cassette reload failed: %v", err)
				} else {
					logger.Debug("cassette reloaded: %s", t.path)
				}
				select {
				case reloads <- err:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("cassette watch: %v", err)
			}
		}
	}()

	return reloads, nil
}
