package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch re-reads the config file whenever it changes and pushes the result
// into cfgCh. It blocks until ctx is done. Editors replace files instead of
// writing in place, so the watch is on the parent directory.
func Watch(ctx context.Context, path string, logger zerolog.Logger, cfgCh chan<- Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}

			if eAbs, err := filepath.Abs(e.Name); err != nil || eAbs != absPath {
				continue
			}

			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}

			cfg, err := FileProvider{ConfigPath: path}.Config()
			if err != nil {
				logger.Error().
					Err(err).
					Str("config", path).
					Msg("Failed to reload config")
				continue
			}

			logger.Info().
				Str("config", path).
				Msg("Config reloaded")

			select {
			case cfgCh <- cfg:
			case <-ctx.Done():
				return ctx.Err()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error().
				Err(err).
				Msg("Config watcher error")
		}
	}
}
