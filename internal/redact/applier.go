package redact

import "sort"

// applyPlan merges all planned edits and rewrites the line array. Returns a
// new slice; the input is never mutated. The output always has exactly as
// many lines as the input: no edit shape inserts or removes a line.
//
// Application order:
//  1. BlockEdits intersecting the window, highest priority first, earlier
//     start breaking ties, accepted greedily when disjoint from every block
//     already accepted. A rejected block is dropped without further effect.
//  2. LineReplaceEdits inside the window overwrite whole lines. Two-line-body
//     replacements and block edits never target the same lines by
//     construction, so this ordering is safe.
//  3. InlineEdits inside the window, per line from the highest start column
//     down, so earlier column offsets stay valid across replacements of
//     differing length. An inline edit overlapping an already-applied range
//     on the same line is dropped.
func applyPlan(lines []string, plan Plan, win LineWindow) []string {
	out := make([]string, len(lines))
	copy(out, lines)

	blocks := make([]BlockEdit, 0, len(plan.Blocks))
	for _, b := range plan.Blocks {
		if win.intersects(b.Start, b.End) {
			blocks = append(blocks, b)
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Priority != blocks[j].Priority {
			return blocks[i].Priority > blocks[j].Priority
		}
		return blocks[i].Start < blocks[j].Start
	})

	var accepted []BlockEdit
	for _, b := range blocks {
		if overlapsAny(b, accepted) {
			continue
		}
		accepted = append(accepted, b)
		for line := b.Start; line <= b.End; line++ {
			if line < 1 || line > len(out) {
				continue
			}
			if line == b.Start {
				out[line-1] = b.Indent + LineMarker
			} else {
				out[line-1] = ""
			}
		}
	}

	for _, r := range plan.Replaces {
		if !win.contains(r.Line) || r.Line < 1 || r.Line > len(out) {
			continue
		}
		out[r.Line-1] = r.Text
	}

	byLine := make(map[int][]InlineEdit)
	for _, e := range plan.Inlines {
		if win.contains(e.Line) && e.Line >= 1 && e.Line <= len(out) {
			byLine[e.Line] = append(byLine[e.Line], e)
		}
	}
	for line, edits := range byLine {
		sort.SliceStable(edits, func(i, j int) bool {
			return edits[i].StartCol > edits[j].StartCol
		})
		text := out[line-1]
		applied := len(text) + 1
		for _, e := range edits {
			if e.EndCol > applied {
				continue
			}
			start, end := e.StartCol, e.EndCol
			if start > len(text) {
				start = len(text)
			}
			if end > len(text) {
				end = len(text)
			}
			if start > end {
				continue
			}
			text = text[:start] + e.Replacement + text[end:]
			applied = start
		}
		out[line-1] = text
	}

	return out
}

func overlapsAny(b BlockEdit, accepted []BlockEdit) bool {
	for _, a := range accepted {
		if b.Start <= a.End && b.End >= a.Start {
			return true
		}
	}
	return false
}
