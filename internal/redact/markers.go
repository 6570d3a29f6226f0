package redact

// Marker text inserted in place of hidden content. Both forms are comments in
// the target grammar, so a redacted file never gains executable tokens.
const (
	// LineMarker replaces a collapsed block as a standalone line.
	LineMarker = "// [implementation hidden]"

	// InlineMarker replaces a span inside a single line.
	InlineMarker = "/* [implementation hidden] */"
)
