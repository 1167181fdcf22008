package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/productsearch/internal/logger"
)

// Watch reloads the store whenever the config file changes on disk and
// calls onChange after each successful reload. It watches the directory
// so editors that replace the file by rename are seen. Watch blocks until
// ctx is done.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}
	logger.Debug("Watching %s for changes", s.filePath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.handleFsEvent(event) {
				continue
			}
			if onChange != nil {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}

// handleFsEvent reloads the store for events on the config file.
// Returns true when the in-memory configuration was replaced.
func (s *ConfigStore) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if err := s.Load(); err != nil {
		logger.Warn("Config reload failed, keeping previous values: %v", err)
		return false
	}
	logger.Info("Reloaded %s", s.filePath)
	return true
}
