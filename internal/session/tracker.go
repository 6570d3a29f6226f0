// Package session holds the per-session state around the redaction engine:
// which files the session itself has written (and may therefore see in the
// clear), which paths are allowlisted, and an optional workspace watcher that
// feeds write events into the tracker.
package session

import (
	"path/filepath"
	"sync"
)

// Tracker records the files written during one session. A session always
// sees its own output unredacted; redaction only hides pre-existing
// implementations.
type Tracker struct {
	mu      sync.Mutex
	written map[string]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{written: make(map[string]struct{})}
}

// RecordWrite marks a path as written by this session.
func (t *Tracker) RecordWrite(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.written[normalize(path)] = struct{}{}
}

// WasWritten reports whether this session wrote the path.
func (t *Tracker) WasWritten(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.written[normalize(path)]
	return ok
}

// Len returns the number of distinct written paths.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.written)
}

func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
