package redact

import sitter "github.com/smacker/go-tree-sitter"

// Pos locates a tree node boundary in source text. Line is 1-based to match
// editor and tool-output conventions; Col is a 0-based byte offset into the
// line, so it can be used directly to slice the line string.
type Pos struct {
	Line int
	Col  int
}

// posFrom converts a tree-sitter point (0-based row, byte column) to a Pos.
func posFrom(p sitter.Point) Pos {
	return Pos{Line: int(p.Row) + 1, Col: int(p.Column)}
}

// LineWindow is an inclusive 1-based line range restricting where edits may
// apply. The zero value is not valid; use fullWindow for whole-file scope.
type LineWindow struct {
	Start int
	End   int
}

func fullWindow(lineCount int) LineWindow {
	return LineWindow{Start: 1, End: lineCount}
}

// contains reports whether the 1-based line falls inside the window.
func (w LineWindow) contains(line int) bool {
	return line >= w.Start && line <= w.End
}

// intersects reports whether the inclusive line range [start, end] overlaps
// the window. A block that merely intersects is still applied in full, which
// can touch lines outside the window; callers rely on that behavior when
// redacting numbered excerpts whose declarations straddle the excerpt edge.
func (w LineWindow) intersects(start, end int) bool {
	return start <= w.End && end >= w.Start
}
