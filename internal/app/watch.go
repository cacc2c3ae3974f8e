package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay collapses the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// watch re-runs the app whenever a definition file changes, until ctx is
// cancelled. A failed reload is logged and the previous output stands.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(a.config.GridPath)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	a.logger.Info("👀 Watching definitions for changes.", "path", a.config.GridPath, "dirs", len(dirs))

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch stopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !a.relevant(event) {
				continue
			}
			a.logger.Debug("Definition changed.", "file", event.Name, "op", event.Op.String())
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("Watcher failed.", "error", err)
		case <-timer.C:
			a.logger.Info("🔄 Reloading definitions...")
			if err := a.runOnce(ctx); err != nil {
				a.logger.Error("Reload failed.", "error", err)
			}
		}
	}
}

// relevant reports whether an event touches a definition file the app reads.
func (a *App) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !a.loader.handles(event.Name) {
		return false
	}
	info, err := os.Stat(a.config.GridPath)
	if err == nil && !info.IsDir() {
		return filepath.Clean(event.Name) == filepath.Clean(a.config.GridPath)
	}
	return true
}

// watchDirs lists the directories to watch for a grid path. A file is
// watched through its directory, because editors often replace files on
// save.
func watchDirs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{filepath.Dir(path)}, nil
	}
	var dirs []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, p)
		}
		return nil
	})
	return dirs, err
}
