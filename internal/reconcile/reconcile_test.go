package reconcile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"blackbox/internal/redact"
)

const mathSource = "export function add(a: number, b: number): number {\n" +
	"  const sum = a + b;\n" +
	"  return sum;\n" +
	"}\n"

func newReconciler(t *testing.T, files map[string]string) *Reconciler {
	t.Helper()
	engine := redact.NewEngine(nil)
	t.Cleanup(engine.Close)
	read := func(path string) (string, error) {
		content, ok := files[path]
		if !ok {
			return "", errors.New("no such file")
		}
		return content, nil
	}
	return New(engine, read, DefaultOptions(), nil)
}

func wrap(numbered string) string {
	return "Tool result:\n<file>\n" + numbered + "\n</file>\nDone.\n"
}

func TestRedactOutput_RewritesNumberedExcerpt(t *testing.T) {
	rec := newReconciler(t, map[string]string{"math.ts": mathSource})

	numbered := strings.Join([]string{
		"     1→export function add(a: number, b: number): number {",
		"     2→  const sum = a + b;",
		"     3→  return sum;",
		"     4→}",
	}, "\n")

	out, ok := rec.RedactOutput("math.ts", wrap(numbered))
	if !ok {
		t.Fatal("expected reconciliation to succeed")
	}

	want := wrap(strings.Join([]string{
		"     1→export function add(a: number, b: number): number {",
		"     2→  " + redact.LineMarker,
		"     3→",
		"     4→",
	}, "\n"))
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("reconstructed output mismatch (-want +got):\n%s", diff)
	}
}

func TestRedactOutput_PreservesTrailingLines(t *testing.T) {
	rec := newReconciler(t, map[string]string{"math.ts": mathSource})

	numbered := strings.Join([]string{
		"     1→export function add(a: number, b: number): number {",
		"     2→  const sum = a + b;",
		"     3→  return sum;",
		"     4→}",
		"",
		"(4 lines total)",
	}, "\n")

	out, ok := rec.RedactOutput("math.ts", wrap(numbered))
	if !ok {
		t.Fatal("expected reconciliation to succeed")
	}
	if !strings.Contains(out, "\n\n(4 lines total)\n</file>") {
		t.Errorf("trailing unprefixed lines must be untouched, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "Tool result:\n<file>\n") || !strings.HasSuffix(out, "</file>\nDone.\n") {
		t.Errorf("surrounding text must be byte-identical, got:\n%s", out)
	}
}

func TestRedactOutput_WindowedExcerpt(t *testing.T) {
	// An excerpt starting mid-file derives a window; lines before it stay
	// out of the excerpt entirely.
	src := "// header\n" + mathSource
	rec := newReconciler(t, map[string]string{"math.ts": src})

	numbered := strings.Join([]string{
		"     2→export function add(a: number, b: number): number {",
		"     3→  const sum = a + b;",
		"     4→  return sum;",
		"     5→}",
	}, "\n")

	out, ok := rec.RedactOutput("math.ts", wrap(numbered))
	if !ok {
		t.Fatal("expected reconciliation to succeed")
	}
	if !strings.Contains(out, "     3→  "+redact.LineMarker) {
		t.Errorf("expected block marker on excerpt line 3, got:\n%s", out)
	}
	if strings.Contains(out, "sum") {
		t.Error("body token leaked into reconstructed excerpt")
	}
}

func TestRedactOutput_TabSeparator(t *testing.T) {
	rec := newReconciler(t, map[string]string{"math.ts": mathSource})

	numbered := strings.Join([]string{
		"     1\texport function add(a: number, b: number): number {",
		"     2\t  const sum = a + b;",
		"     3\t  return sum;",
		"     4\t}",
	}, "\n")

	out, ok := rec.RedactOutput("math.ts", wrap(numbered))
	if !ok {
		t.Fatal("expected reconciliation to succeed with tab separators")
	}
	if !strings.Contains(out, "     2\t  "+redact.LineMarker) {
		t.Errorf("prefix bytes must be preserved verbatim, got:\n%s", out)
	}
}

func TestRedactOutput_Abstains(t *testing.T) {
	rec := newReconciler(t, map[string]string{"math.ts": mathSource})

	tests := []struct {
		name    string
		path    string
		wrapped string
	}{
		{
			name:    "missing start tag",
			path:    "math.ts",
			wrapped: "no section here\n",
		},
		{
			name:    "missing end tag",
			path:    "math.ts",
			wrapped: "<file>\n     1→export function add(a: number, b: number): number {\n",
		},
		{
			name:    "empty section",
			path:    "math.ts",
			wrapped: "<file>\n</file>\n",
		},
		{
			name:    "no prefixed lines",
			path:    "math.ts",
			wrapped: "<file>\nplain text, no numbers\n</file>\n",
		},
		{
			name:    "unreadable file",
			path:    "missing.ts",
			wrapped: wrap("     1→anything"),
		},
		{
			name: "window past end of file",
			path: "math.ts",
			wrapped: wrap("    98→export function add(a: number, b: number): number {\n" +
				"    99→}"),
		},
		{
			name: "non-consecutive numbering",
			path: "math.ts",
			wrapped: wrap("     1→export function add(a: number, b: number): number {\n" +
				"     4→}"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := rec.RedactOutput(tt.path, tt.wrapped)
			if ok {
				t.Errorf("expected abstention, got:\n%s", out)
			}
			if out != "" {
				t.Errorf("abstention must return empty text, got %q", out)
			}
		})
	}
}
