// Package reconcile re-derives redacted content for a numbered-line excerpt
// embedded in larger tool output. It locates the bounded file section, maps
// the numeric prefixes to a line window over the real file, runs the full
// redaction pipeline with that window, and splices the redacted lines back
// under their original prefixes. Anything that does not look exactly like a
// numbered excerpt makes the reconciler abstain: leaving the text untouched
// is always safe.
package reconcile

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"blackbox/internal/redact"
)

// linePrefix matches the fixed-width numeric prefix on excerpt lines:
// optional leading whitespace, the 1-based line number, and the separator.
var linePrefix = regexp.MustCompile(`^(\s*\d+)(→|\t)`)

// Options configure the bounded-section tags around the excerpt.
type Options struct {
	StartTag string
	EndTag   string
}

// DefaultOptions returns the tags the host wraps file excerpts in.
func DefaultOptions() Options {
	return Options{StartTag: "<file>", EndTag: "</file>"}
}

// ReadFileFunc reads the full current content of a path. It stands in for
// the host filesystem so tests can substitute fixtures.
type ReadFileFunc func(path string) (string, error)

// Reconciler drives windowed redaction of wrapped tool output.
type Reconciler struct {
	engine *redact.Engine
	read   ReadFileFunc
	opts   Options
	log    *zap.Logger
}

// New creates a reconciler over the given engine. A nil reader defaults to
// the local filesystem; a nil logger disables logging.
func New(engine *redact.Engine, read ReadFileFunc, opts Options, log *zap.Logger) *Reconciler {
	if read == nil {
		read = func(path string) (string, error) {
			data, err := os.ReadFile(path)
			return string(data), err
		}
	}
	if opts.StartTag == "" || opts.EndTag == "" {
		opts = DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{engine: engine, read: read, opts: opts, log: log}
}

// RedactOutput rewrites the bounded excerpt in wrapped so its numbered lines
// show the redacted form of path. Returns ok=false (and the empty string)
// when the section or its closing tag is missing, no prefixed lines are
// found, the file cannot be read, or the redacted output fails the integrity
// check against the excerpt. All surrounding text is left byte-identical.
func (r *Reconciler) RedactOutput(path, wrapped string) (string, bool) {
	openIdx := strings.Index(wrapped, r.opts.StartTag)
	if openIdx < 0 {
		return "", false
	}
	contentStart := openIdx + len(r.opts.StartTag)
	closeOff := strings.Index(wrapped[contentStart:], r.opts.EndTag)
	if closeOff < 0 {
		r.log.Debug("reconcile: closing tag missing", zap.String("file", path))
		return "", false
	}
	contentEnd := contentStart + closeOff

	section := wrapped[contentStart:contentEnd]
	lead := ""
	if strings.HasPrefix(section, "\n") {
		lead = "\n"
		section = section[1:]
	}
	lines := strings.Split(section, "\n")

	prefixes, numbers := parsePrefixes(lines)
	if len(prefixes) == 0 {
		return "", false
	}
	window := redact.LineWindow{Start: numbers[0], End: numbers[len(numbers)-1]}

	content, err := r.read(path)
	if err != nil {
		r.log.Debug("reconcile: unreadable file", zap.String("file", path), zap.Error(err))
		return "", false
	}

	redacted := r.engine.RedactFile(path, content, &window)
	redactedLines := strings.Split(redacted, "\n")

	// Integrity: the slice re-attached under the prefixes must line up
	// exactly with the numbers already displayed, or the excerpt would lie
	// about what is at which line.
	if len(redactedLines) < window.End {
		return "", false
	}
	slice := redactedLines[window.Start-1 : window.End]
	if len(slice) != len(prefixes) {
		return "", false
	}

	rebuilt := make([]string, 0, len(lines))
	for i, prefix := range prefixes {
		rebuilt = append(rebuilt, prefix+slice[i])
	}
	rebuilt = append(rebuilt, lines[len(prefixes):]...)

	return wrapped[:contentStart] + lead + strings.Join(rebuilt, "\n") + wrapped[contentEnd:], true
}

// parsePrefixes scans excerpt lines from the top until the first line without
// a numeric prefix; that point is the boundary between prefixed content and
// trailing text. Returns the exact prefix bytes (for re-attachment) and the
// parsed line numbers.
func parsePrefixes(lines []string) (prefixes []string, numbers []int) {
	for _, line := range lines {
		m := linePrefix.FindStringSubmatch(line)
		if m == nil {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(m[1]))
		if err != nil || n < 1 {
			break
		}
		prefixes = append(prefixes, m[0])
		numbers = append(numbers, n)
	}
	return prefixes, numbers
}
