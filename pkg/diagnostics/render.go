package diagnostics

import (
	"fmt"
	"strings"

	"github.com/psiberx/redscript/pkg/sourcemap"
)

// Render formats d exactly as the original's Diagnostic::display does:
// an optional "[code] " prefix for CompileError, the source location, the
// enclosing line with tabs replaced by single spaces, a caret underline,
// then the diagnostic's own message (spec §4.5, "Rendering").
func Render(d Diagnostic, src sourcemap.SourceMap) (string, error) {
	loc, ok := src.Lookup(d.Span)
	if !ok {
		return "", fmt.Errorf("diagnostics: unknown file for span")
	}

	line := strings.TrimRight(loc.EnclosingLine(), " \t\r\n")
	line = strings.ReplaceAll(line, "\t", " ")

	underlineLen := 3
	if loc.Start.Line == loc.End.Line {
		underlineLen = loc.End.Col - loc.Start.Col
		if underlineLen < 1 {
			underlineLen = 1
		}
	}

	var b strings.Builder
	if ce, ok := d.Kind.(CompileError); ok {
		fmt.Fprintf(&b, "[%s] ", ce.Code)
	}
	fmt.Fprintf(&b, "At %s:%d:%d\n", loc.File, loc.Start.Line, loc.Start.Col)
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", loc.Start.Col))
	b.WriteString(strings.Repeat("^", underlineLen))
	b.WriteByte('\n')
	b.WriteString(d.Kind.Message())
	return b.String(), nil
}
