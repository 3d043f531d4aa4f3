package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/TomasB/geoip/internal/geoip"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the Source whenever the file at path is written or
// replaced, until ctx is done or the Source is closed.
func (s *Source) Watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// database updates usually replace the file, so watch its directory
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			err := s.Reload()
			if errors.Is(err, geoip.ErrClosed) {
				return nil
			}
			if err != nil {
				slog.Warn("database reload failed", "path", path, "error", err)
				continue
			}
			slog.Info("database reloaded", "path", path, "description", s.Describe())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("database watcher error", "path", path, "error", err)
		}
	}
}
