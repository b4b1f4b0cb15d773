package diagnostics

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// RenderSource formats d like FormatDiagnostic(d, true) and appends the offending
// source line with a caret under the start column. Columns are byte based in spans;
// the caret is placed by grapheme cluster so wide or combined characters line up.
func RenderSource(d Diagnostic, source string) string {
	out := FormatDiagnostic(d, true)
	if d.Span == nil || d.Span.StartLine < 1 {
		return out
	}
	lines := strings.Split(source, "\n")
	if d.Span.StartLine > len(lines) {
		return out
	}
	line := strings.TrimRight(lines[d.Span.StartLine-1], "\r")

	col := d.Span.StartCol - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	pad := caretOffset(line[:col])

	width := 1
	if d.Span.EndLine == d.Span.StartLine && d.Span.EndCol > d.Span.StartCol {
		end := d.Span.EndCol - 1
		if end > len(line) {
			end = len(line)
		}
		if n := uniseg.GraphemeClusterCount(line[col:end]); n > 1 {
			width = n
		}
	}

	gutter := fmt.Sprintf("%d", d.Span.StartLine)
	blank := strings.Repeat(" ", len(gutter))
	var b strings.Builder
	b.WriteString(out)
	fmt.Fprintf(&b, "\n %s |\n %s | %s\n %s | %s%s", blank, gutter, line, blank, pad, strings.Repeat("^", width))
	return b.String()
}

// caretOffset returns the whitespace that puts a caret under the grapheme following
// prefix, keeping tabs so the terminal expands them the same way.
func caretOffset(prefix string) string {
	var b strings.Builder
	gr := uniseg.NewGraphemes(prefix)
	for gr.Next() {
		if gr.Str() == "\t" {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
