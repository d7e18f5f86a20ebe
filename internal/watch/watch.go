// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch notifies the dashboard when strategy files change so the
// cached scan can be dropped before its TTL runs out.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watchedDirs are the directory names whose contents affect a scan.
var watchedDirs = map[string]bool{
	"strategy": true,
	"epics":    true,
	"tasks":    true,
}

// Watcher reports changes under the strategy folders of a set of projects.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func()
	logger   *slog.Logger
}

// New watches root/<name> and its strategy, epics and tasks folders for
// every project name. onChange is called from Run for every relevant event.
func New(root string, names []string, onChange func(), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{fsw: fsw, onChange: onChange, logger: logger}
	for _, name := range names {
		w.addTree(filepath.Join(root, name))
	}
	return w, nil
}

// addTree watches a project directory and whichever strategy folders exist
// below it. Missing directories are skipped.
func (w *Watcher) addTree(projectDir string) {
	strategy := filepath.Join(projectDir, "strategy")
	for _, dir := range []string{
		projectDir,
		strategy,
		filepath.Join(strategy, "epics"),
		filepath.Join(strategy, "tasks"),
	} {
		w.add(dir)
	}
}

func (w *Watcher) add(dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn("Failed to watch directory", "path", dir, "error", err)
		return
	}
	w.logger.Debug("Watching directory", "path", dir)
}

// Watched lists the directories currently being watched.
func (w *Watcher) Watched() []string {
	return w.fsw.WatchList()
}

// Run delivers change notifications until ctx is cancelled or the watcher
// is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			// A newly created strategy, epics or tasks folder needs its own watch.
			if ev.Has(fsnotify.Create) && watchedDirs[filepath.Base(ev.Name)] {
				if filepath.Base(ev.Name) == "strategy" {
					w.addTree(filepath.Dir(ev.Name))
				} else {
					w.add(ev.Name)
				}
			}
			w.logger.Debug("Strategy file changed", "path", ev.Name, "op", ev.Op.String())
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// relevant reports whether ev can change a scan result: markdown files and
// the strategy folders themselves. Chmod-only events are ignored.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasSuffix(base, ".md") {
		return true
	}
	return watchedDirs[base]
}
