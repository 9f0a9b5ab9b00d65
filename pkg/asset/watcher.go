package asset

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/forgebridge/forgebridge/pkg/assetpath"
)

// Event describes an external change under the asset root, reported in
// logical path form so controllers see the same addressing commands use.
type Event struct {
	Path string `json:"path"`
	Op   string `json:"op"` // create, write, remove, rename
}

// Watcher observes the asset root for changes made outside the bridge
// (the editor itself, version control, other tooling) and republishes
// them to interested subscribers.
type Watcher struct {
	paths  *assetpath.Normalizer
	log    *slog.Logger
	events chan Event
}

// NewWatcher creates a watcher for the store's asset root.
func NewWatcher(paths *assetpath.Normalizer, log *slog.Logger) *Watcher {
	return &Watcher{paths: paths, log: log, events: make(chan Event, 64)}
}

// Events returns the change stream. Closed when Run returns.
func (w *Watcher) Events() <-chan Event { return w.events }

// Run watches until the context is cancelled. Subdirectories existing at
// start are watched; directories created later are added as they appear
// (fsnotify watches are not recursive).
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()
	defer close(w.events)

	if err := w.addTree(fsw, w.paths.RootDir()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if w.log != nil {
				w.log.Warn("asset watcher error", slog.String("error", err.Error()))
			}
		}
	}
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Op.Has(fsnotify.Create) {
		// New directories must be added to keep coverage recursive.
		_ = w.addTree(fsw, ev.Name)
	}
	op := opString(ev.Op)
	if op == "" {
		return
	}
	rel, err := filepath.Rel(w.paths.RootDir(), ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	logical := w.paths.RootName() + "/" + filepath.ToSlash(rel)
	select {
	case w.events <- Event{Path: logical, Op: op}:
	default:
		// Drop rather than block the watch loop on a slow subscriber.
	}
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
}

func opString(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
