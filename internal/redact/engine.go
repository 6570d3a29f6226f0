// Package redact rewrites TypeScript/JavaScript source into a
// signature-preserving redacted form: implementation bodies and initializers
// are hidden behind markers while exported signatures, type annotations, and
// documentation comments stay intact, and the output always has exactly as
// many lines as the input.
package redact

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Engine drives the redaction pipeline: parse (memoized), classify, plan,
// apply. One engine owns one TreeCache; scope an engine to a caller session
// rather than sharing it process-wide.
type Engine struct {
	cache *TreeCache
	log   *zap.Logger
}

// NewEngine creates an engine with its own tree cache. A nil logger disables
// logging.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cache: NewTreeCache(), log: log}
}

// Close releases the cached trees and parsers.
func (e *Engine) Close() {
	e.cache.Close()
}

// RedactFile returns the redacted form of text. The output line count always
// equals the input line count. A non-nil window restricts which edits apply,
// though the whole file is still parsed for context; a block edit that merely
// intersects the window is applied in full. Unsupported extensions and
// unparseable input are returned unchanged - "no change" is always a safe
// fallback.
func (e *Engine) RedactFile(path, text string, win *LineWindow) string {
	tree := e.cache.Get(path, text)
	if tree == nil {
		return text
	}

	lines := strings.Split(text, "\n")
	candidates := selectCandidates(tree.RootNode(), []byte(text))
	plan := planEdits(candidates, lines)

	window := fullWindow(len(lines))
	if win != nil {
		window = *win
	}
	out := applyPlan(lines, plan, window)

	e.log.Debug("redacted file",
		zap.String("file", filepath.Base(path)),
		zap.Int("candidates", len(candidates)),
		zap.Int("blocks", len(plan.Blocks)),
		zap.Int("replaces", len(plan.Replaces)),
		zap.Int("inlines", len(plan.Inlines)))

	return strings.Join(out, "\n")
}
