package file

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/salesmate-labs/salesmate-cli/internal/logger"
)

// Watch reloads the catalog whenever the products file is rewritten on
// disk. It blocks until the context is cancelled; callers run it on its
// own goroutine. A reload failure keeps the previous catalog and is only
// logged, so a half-saved edit never kills a running session.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.path); err != nil {
		return fmt.Errorf("watch products file %s: %w", s.path, err)
	}
	logger.Debug("watching %s for catalog changes", s.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				logger.Warn("catalog reload failed, keeping previous catalog: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher: %v", err)
		}
	}
}
