// Package sourcemap defines the SourceMap collaborator consumed by the
// Emitter's Call Encoder (for call-site line numbers) and by the Diagnostic
// Pipeline's renderer (spec §6).
package sourcemap

import "github.com/psiberx/redscript/pkg/ast"

// Position is a line/column pair. Col counts characters from 0 at the
// start of the line; the diagnostic renderer indents its caret by Col.
type Position struct {
	Line, Col int
}

// Location is the resolved source location of a Span.
type Location struct {
	Start, End Position
	File       string
	// Line is the full source text of the line the span starts on,
	// without a trailing newline.
	Line string
}

// EnclosingLine returns the text of the line the location starts on.
func (l Location) EnclosingLine() string { return l.Line }

// SourceMap resolves spans to their human-readable location.
type SourceMap interface {
	Lookup(span ast.Span) (Location, bool)
}
