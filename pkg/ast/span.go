// Package ast defines the typed-expression data model the Emitter consumes
// (spec §3). Producing it — lexing, parsing, name resolution, and type
// checking — is out of scope for this module; a typechecker elsewhere
// builds these values.
package ast

// Span is a source range, opaque to the codegen core beyond being threaded
// through to the source map and to error/diagnostic reporting.
type Span struct {
	Low, High uint32
}

// Zero is the placeholder span used when no real source location applies
// (e.g. a synthesized call-site error with no attached span).
var Zero = Span{}
