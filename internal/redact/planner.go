package redact

import "strings"

// InlineEdit replaces a column range on a single line. Columns are 0-based
// byte offsets; EndCol is exclusive.
type InlineEdit struct {
	Line        int
	StartCol    int
	EndCol      int
	Replacement string
}

// LineReplaceEdit overwrites one whole line with precomputed text.
type LineReplaceEdit struct {
	Line int
	Text string
}

// BlockEdit collapses an inclusive line range: the anchor (first) line becomes
// the indented line marker, every other line in the range becomes empty.
// Priority drives conflict resolution between overlapping blocks.
type BlockEdit struct {
	Start    int
	End      int
	Indent   string
	Priority int
}

// Plan is the set of edits derived for one redaction call.
type Plan struct {
	Blocks   []BlockEdit
	Replaces []LineReplaceEdit
	Inlines  []InlineEdit
}

// planEdits derives edits for every candidate. All shape decisions live here;
// the applier only merges and writes.
func planEdits(candidates []Candidate, lines []string) Plan {
	var plan Plan
	for _, c := range candidates {
		planCandidate(c, lines, &plan)
	}
	return plan
}

// planCandidate picks the edit shape from the candidate kind and line span.
//
//   - One line: an InlineEdit over the exact column range. Surrounding text on
//     the line, including the whole signature, stays put.
//   - Body over exactly two lines with an empty interior: a LineReplaceEdit
//     placing the line marker right after the opening brace; the closing line
//     is untouched. This avoids a blank filler line for trivial bodies.
//   - Three or more lines: a BlockEdit over the interior; the opening line
//     keeps the signature and brace.
//   - Multi-line initializers: the assignment line keeps everything through
//     the operator plus the inline marker, the final line keeps only what
//     trails the initializer, and the lines strictly between collapse.
//   - Whole declarations: a BlockEdit over the full span, hiding the name and
//     signature too.
func planCandidate(c Candidate, lines []string, plan *Plan) {
	switch c.Kind {
	case CandidateWhole:
		plan.Blocks = append(plan.Blocks, BlockEdit{
			Start:    c.Start.Line,
			End:      c.End.Line,
			Indent:   indentOf(lines, c.Start.Line),
			Priority: c.Priority,
		})

	case CandidateBody:
		switch {
		case c.Start.Line == c.End.Line:
			plan.Inlines = append(plan.Inlines, InlineEdit{
				Line:        c.Start.Line,
				StartCol:    c.Start.Col,
				EndCol:      c.End.Col,
				Replacement: "{ " + InlineMarker + " }",
			})
		case c.End.Line == c.Start.Line+1:
			opening := lineAt(lines, c.Start.Line)
			kept := opening
			if c.Start.Col+1 <= len(opening) {
				kept = opening[:c.Start.Col+1]
			}
			plan.Replaces = append(plan.Replaces, LineReplaceEdit{
				Line: c.Start.Line,
				Text: kept + " " + LineMarker,
			})
		default:
			plan.Blocks = append(plan.Blocks, BlockEdit{
				Start:    c.Start.Line + 1,
				End:      c.End.Line,
				Indent:   indentOf(lines, c.Start.Line+1),
				Priority: c.Priority,
			})
		}

	case CandidateInitializer:
		if c.Start.Line == c.End.Line {
			plan.Inlines = append(plan.Inlines, InlineEdit{
				Line:        c.Start.Line,
				StartCol:    c.Start.Col,
				EndCol:      c.End.Col,
				Replacement: InlineMarker,
			})
			return
		}
		// Assignment-operator line: declaration text through "=", then the
		// inline marker. The signature before the operator is never altered.
		opLine := lineAt(lines, c.Cut.Line)
		kept := opLine
		if c.Cut.Col <= len(opLine) {
			kept = opLine[:c.Cut.Col]
		}
		plan.Replaces = append(plan.Replaces, LineReplaceEdit{
			Line: c.Cut.Line,
			Text: strings.TrimRight(kept, " \t") + " " + InlineMarker,
		})
		// Final line: only tokens trailing the initializer survive,
		// re-indented to the original line's leading whitespace.
		finalLine := lineAt(lines, c.End.Line)
		trailing := ""
		if c.End.Col <= len(finalLine) {
			trailing = strings.TrimSpace(finalLine[c.End.Col:])
		}
		text := ""
		if trailing != "" {
			text = indentOf(lines, c.End.Line) + trailing
		}
		plan.Replaces = append(plan.Replaces, LineReplaceEdit{
			Line: c.End.Line,
			Text: text,
		})
		if c.Cut.Line+1 <= c.End.Line-1 {
			plan.Blocks = append(plan.Blocks, BlockEdit{
				Start:    c.Cut.Line + 1,
				End:      c.End.Line - 1,
				Indent:   indentOf(lines, c.Cut.Line+1),
				Priority: c.Priority,
			})
		}

	case CandidateExpression:
		if c.Start.Line == c.End.Line {
			plan.Inlines = append(plan.Inlines, InlineEdit{
				Line:        c.Start.Line,
				StartCol:    c.Start.Col,
				EndCol:      c.End.Col,
				Replacement: InlineMarker,
			})
			return
		}
		plan.Blocks = append(plan.Blocks, BlockEdit{
			Start:    c.Start.Line + 1,
			End:      c.End.Line,
			Indent:   indentOf(lines, c.Start.Line+1),
			Priority: c.Priority,
		})
	}
}

// lineAt returns the 1-based line, or "" when out of range. Tree positions
// can run past the line array when the source lacks a trailing newline the
// grammar expected, so every lookup is guarded.
func lineAt(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// indentOf returns the leading whitespace of the 1-based line.
func indentOf(lines []string, line int) string {
	text := lineAt(lines, line)
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}
