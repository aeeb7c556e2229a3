package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch translates a job again whenever its input is written or replaced,
// until ctx is cancelled.
//
// The parent directories are watched rather than the files, because
// editors commonly save by writing a new file and renaming it over the old.
func watch(ctx context.Context, b *batch, jobs []job, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot start watcher: %w", err)
	}
	defer w.Close()

	byPath := make(map[string]job, len(jobs))
	dirs := make(map[string]bool)
	for _, j := range jobs {
		abs, err := filepath.Abs(j.input)
		if err != nil {
			return err
		}
		byPath[abs] = j
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}
	logger.Info("watching", slog.Int("files", len(byPath)))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			j, tracked := byPath[abs]
			if !tracked {
				continue
			}
			logger.Debug("changed", slog.String("file", j.input), slog.String("op", ev.Op.String()))
			if err := retranslate(ctx, b, j); err != nil {
				return err
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		}
	}
}

// retranslate runs one job for the watch loop. Cancellation while the job
// runs ends watching normally.
func retranslate(ctx context.Context, b *batch, j job) error {
	_, err := b.run(ctx, []job{j})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
