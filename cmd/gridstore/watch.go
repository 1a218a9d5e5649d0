package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// settle is the minimum delay between two reloads. Editors and generators
// often write a file in several steps.
const settle = 250 * time.Millisecond

// watchFile calls reload after path is written, until ctx is done. Events
// arriving while waiting for the limiter are folded into one reload.
func watchFile(ctx context.Context, path string, reload func() error) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	// Watch the directory: editors replace files by renaming over them.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	lim := rate.NewLimiter(rate.Every(settle), 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isWrite(event, path) {
				continue
			}
			if err := lim.Wait(ctx); err != nil {
				return err
			}
			drain(w.Events)
			if err := reload(); err != nil {
				slog.WarnContext(ctx, "Reload failed", "path", path, "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "Error watching data file", "err", err)
		}
	}
}

func isWrite(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// drain discards the events already queued.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
