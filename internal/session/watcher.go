package session

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher subscribes to filesystem write events under a workspace root and
// records them in a Tracker. It is the glue for hosts that do not report
// their own writes: anything modified while the watcher runs is treated as
// session output and exempted from redaction.
type Watcher struct {
	tracker *Tracker
	fsw     *fsnotify.Watcher
	log     *zap.Logger
}

// NewWatcher creates a watcher over root, registering root and every
// subdirectory. A nil logger disables logging.
func NewWatcher(tracker *Tracker, root string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, skip
		}
		if d.IsDir() {
			if addErr := fsw.Add(path); addErr != nil {
				log.Warn("watch: cannot add directory", zap.String("dir", path), zap.Error(addErr))
			}
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{tracker: tracker, fsw: fsw, log: log}, nil
}

// Run consumes events until the context is cancelled or the watcher is
// closed. Writes and creates are recorded; newly created directories are
// added to the watch set.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if addErr := w.fsw.Add(event.Name); addErr != nil {
					w.log.Warn("watch: cannot add directory", zap.String("dir", event.Name), zap.Error(addErr))
				}
				continue
			}
			w.tracker.RecordWrite(event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch: event error", zap.Error(err))
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
