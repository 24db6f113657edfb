package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchSettle = 200 * time.Millisecond

// Watch reloads path whenever it changes and hands each config that loads
// cleanly to fn. Bursts of events from one save are coalesced. The
// directory is watched so editors that replace the file are followed.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, log zerolog.Logger, fn func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log.Debug().Str("path", abs).Msg("watching config")

	settle := time.NewTimer(watchSettle)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle.Reset(watchSettle)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("config watch")

		case <-settle.C:
			c, err := Load(abs)
			if err != nil {
				log.Warn().Err(err).Msg("config reload rejected")
				continue
			}
			log.Info().Str("path", abs).Msg("config reloaded")
			fn(c)
		}
	}
}
