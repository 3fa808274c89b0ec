package app

import (
	"context"
	"errors"

	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/table"
	"github.com/zjrosen/sdktable/internal/watcher"
)

// ErrNotWatchable is returned by Watch for stores without a backing file.
var ErrNotWatchable = errors.New("store has no file to watch")

// ReloadFunc receives the outcome of each reload triggered by Watch.
type ReloadFunc func(report table.LoadReport, err error)

// Watch reloads the table whenever its file changes on disk, until ctx is
// done. onReload may be nil.
func (a *App) Watch(ctx context.Context, onReload ReloadFunc) error {
	path := a.StorePath()
	if path == "" {
		return ErrNotWatchable
	}

	wcfg := watcher.DefaultConfig(path)
	if a.cfg.Watch.Debounce > 0 {
		wcfg.Debounce = a.cfg.Watch.Debounce
	}
	w, err := watcher.New(wcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to stop watcher", err)
		}
	}()

	onChange, err := w.Start()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-onChange:
			report, err := a.Load(ctx)
			if err != nil {
				log.ErrorErr(log.CatWatcher, "Reload failed", err, "path", path)
			} else {
				log.Info(log.CatWatcher, "Reloaded table", "path", path, "loaded", report.Loaded, "skipped", len(report.Skipped))
			}
			if onReload != nil {
				onReload(report, err)
			}
		}
	}
}
