package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// watch renders once, then again whenever one of the input files or the
// nagios file is written or recreated, until ctx is done.
func watch(ctx context.Context, r *runner, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer watcher.Close()

	targets := watchTargets(files, r.cfg.NagiosFile)
	// Directories are watched so editors that replace files by rename keep
	// triggering renders.
	for dir := range watchDirs(targets) {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	if err := r.renderAll(files); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			logrus.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRenderTrigger(event, targets) {
				continue
			}
			logrus.WithField("event", event.String()).Info("input changed, rendering")
			if err := r.renderAll(files); err != nil {
				logrus.WithError(err).Error("render failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watcher error")
		}
	}
}

// watchTargets returns the absolute paths of the watched files. Stdin is
// never watched.
func watchTargets(files []string, nagiosFile string) map[string]bool {
	targets := make(map[string]bool)
	paths := append([]string{nagiosFile}, files...)
	for _, file := range paths {
		if file == "" || file == stdinName {
			continue
		}
		if abs, err := filepath.Abs(file); err == nil {
			targets[abs] = true
		}
	}
	return targets
}

func watchDirs(targets map[string]bool) map[string]bool {
	dirs := make(map[string]bool)
	for target := range targets {
		dirs[filepath.Dir(target)] = true
	}
	return dirs
}

func isRenderTrigger(event fsnotify.Event, targets map[string]bool) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return targets[abs]
}
