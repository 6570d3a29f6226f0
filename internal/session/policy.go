package session

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Policy decides whether a path should be redacted at all. A path is exempt
// when the session wrote it, or when it matches an allowlist glob
// (doublestar patterns, matched against the slash-normalized path and its
// basename).
type Policy struct {
	allow   []string
	tracker *Tracker
}

// NewPolicy creates a policy from allowlist globs and an optional tracker.
func NewPolicy(allow []string, tracker *Tracker) *Policy {
	return &Policy{allow: allow, tracker: tracker}
}

// ShouldRedact reports whether the engine should run on path.
func (p *Policy) ShouldRedact(path string) bool {
	if p == nil {
		return true
	}
	if p.tracker != nil && p.tracker.WasWritten(path) {
		return false
	}
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(slashed)
	for _, pattern := range p.allow {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return false
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return false
		}
	}
	return true
}
