package emit

import (
	"errors"
	"fmt"

	"github.com/psiberx/redscript/pkg/ast"
)

// The typed errors below that have a Span field carry the span of the
// expression they were raised for (the static-array-of-arrays
// UnsupportedFeatureError from zeroInstr leaves it zero). InternalError,
// pool lookup failures, and the plain fmt.Errorf errors for malformed
// input carry no span. The teacher's
// own compiler package raises all of its compile errors with plain
// fmt.Errorf/errors.New — no error-wrapping library appears anywhere in
// pkg/compiler — so this follows suit rather than reaching for one.

// UnexpectedTokenError is raised when an identifier resolves to a
// non-value reference in value position (spec §7).
type UnexpectedTokenError struct {
	Token string
	Span  ast.Span
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token: %s", e.Token)
}

// UnsupportedOperationError is raised for casting to a non-class, indexing
// a non-array, or constructing a non-class/non-struct (spec §7).
type UnsupportedOperationError struct {
	Op   string
	Type string
	Span ast.Span
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation: %s %s", e.Op, e.Type)
}

// UnsupportedFeatureError is raised for an AST shape the typechecker was
// supposed to lower before handing the tree to this core (spec §7).
type UnsupportedFeatureError struct {
	Feature string
	Span    ast.Span
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("unsupported feature: %s", e.Feature)
}

// SignatureMismatchError is raised when a call site supplies more
// arguments than the callee declares parameters (spec §7).
type SignatureMismatchError struct {
	Span ast.Span
}

func (e *SignatureMismatchError) Error() string {
	return "invalid signature"
}

// InternalError wraps a condition the spec calls an "internal compiler
// error" — a dangling label at resolution time (spec §4.4) — which should
// never occur if the emitter is correct.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal compiler error: " + e.Msg
}

// poolLookupError wraps a lookup failure from the constant pool
// (spec §7).
func poolLookupError(err error) error {
	return fmt.Errorf("pool lookup failed: %w", err)
}

var errLabelNumberTooBig = errors.New("label number is too big")
