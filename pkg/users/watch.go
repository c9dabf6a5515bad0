package users

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/sharknado-db/sharknado/pkg/log"
)

// Watch reloads the directory whenever users.json changes on disk, so
// accounts edited by the admin CLI become visible to a running server
// without a restart. It blocks until ctx is cancelled.
func (d *Directory) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory: saves land via rename, which would
	// detach a watch on the file itself
	if err := watcher.Add(filepath.Dir(d.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(d.path), err)
	}

	logger := log.WithComponent("users")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != d.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := d.Reload(); err != nil {
				logger.Warn().Err(err).Msg("failed to reload user directory")
				continue
			}
			logger.Info().Msg("user directory reloaded")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("user directory watcher error")
		}
	}
}
