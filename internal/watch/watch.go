// Package watch reports changes to a single file.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// File signals on the returned channel whenever path is written, replaced
// or removed. The parent directory is watched so atomic rename-over writes
// are seen. Bursts collapse into a single pending signal. The channel is
// closed once ctx is done.
func File(ctx context.Context, path string, logger *slog.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	changed := make(chan struct{}, 1)
	base := filepath.Base(path)

	go func() {
		defer close(changed)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base || event.Op&relevant == 0 {
					continue
				}
				logger.Debug("data file changed", "op", event.Op.String())
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "err", err)
			}
		}
	}()

	return changed, nil
}
