// Package diagnostics implements the Diagnostic Pipeline (spec §4.5): a set
// of independent passes over the same typed AST the Emitter consumes,
// surfacing non-fatal style warnings and fatal compile errors alike as
// uniformly rendered Diagnostics.
package diagnostics

import (
	"fmt"

	"github.com/psiberx/redscript/pkg/ast"
)

// Severity distinguishes diagnostics that merely warn from ones that abort
// compilation of the enclosing function.
type Severity byte

const (
	// Warning diagnostics are logged and collected but never block
	// emission.
	Warning Severity = iota
	// Fatal diagnostics abort compilation of the function they were
	// raised against.
	Fatal
)

// Kind is implemented by every concrete diagnostic payload. Message renders
// the diagnostic's body text (the original's #[error(...)] string).
type Kind interface {
	Message() string
	fatal() bool
}

// Diagnostic pairs a Kind with the span it was raised against.
type Diagnostic struct {
	Kind Kind
	Span ast.Span
}

// IsFatal reports whether this diagnostic aborts compilation.
func (d Diagnostic) IsFatal() bool {
	return d.Kind.fatal()
}

// Code returns the diagnostic's short error code: "OTHER" for every kind
// except CompileError, which returns its wrapped cause's code.
func (d Diagnostic) Code() string {
	if ce, ok := d.Kind.(CompileError); ok {
		return ce.Code
	}
	return "OTHER"
}

func (d Diagnostic) String() string {
	return d.Kind.Message()
}

// ReplaceMethodConflict: a method replacement annotation overwrites a
// previous one targeting the same method.
type ReplaceMethodConflict struct {
	Function ast.PoolIndex
}

func (ReplaceMethodConflict) Message() string {
	return "this method replacement overwrites a previous annotation targeting the same method, " +
		"only one replacement per method can be active at a time"
}
func (ReplaceMethodConflict) fatal() bool { return false }

// FieldConflict: a field with this name already exists in the class.
type FieldConflict struct{}

func (FieldConflict) Message() string {
	return "a field with this name is already defined in the class, this will have no effect"
}
func (FieldConflict) fatal() bool { return false }

// DeprecationKind tags the specific deprecated pattern a Deprecation
// diagnostic warns about.
type DeprecationKind byte

const (
	// UnrelatedTypeEquals: Equals/NotEquals compared two unrelated types
	// (Open Question 1 — currently permitted, not rejected outright).
	UnrelatedTypeEquals DeprecationKind = iota
)

func (k DeprecationKind) String() string {
	switch k {
	case UnrelatedTypeEquals:
		return "comparing unrelated types, this is will not be allowed in the future"
	default:
		return "deprecated"
	}
}

// Deprecation warns about a pattern the compiler still accepts but a future
// version will reject.
type Deprecation struct {
	Kind DeprecationKind
}

func (d Deprecation) Message() string { return d.Kind.String() }
func (Deprecation) fatal() bool       { return false }

// UnusedLocal: a declared local is never read.
type UnusedLocal struct{}

func (UnusedLocal) Message() string { return "this variable is never used" }
func (UnusedLocal) fatal() bool     { return false }

// MissingReturn: not every control-flow exit of a non-void function
// guarantees a return value.
type MissingReturn struct{}

func (MissingReturn) Message() string {
	return "not all code paths return a value, make sure you're not missing a return statement"
}
func (MissingReturn) fatal() bool { return false }

// StatementFallthrough: a non-empty switch-case body lacks a terminal
// break/return.
type StatementFallthrough struct{}

func (StatementFallthrough) Message() string {
	return "the body of this case might fall through, it should end with a break/return statement " +
		"or contain no statements at all"
}
func (StatementFallthrough) fatal() bool { return true }

// InvalidUseOfTemporary: an expression takes the address of, or holds a
// reference to, a temporary value.
type InvalidUseOfTemporary struct{}

func (InvalidUseOfTemporary) Message() string {
	return "this use of a temporary value is not allowed, consider extracting the highlighted " +
		"expression into a variable"
}
func (InvalidUseOfTemporary) fatal() bool { return true }

// AddMethodConflict: an added method conflicts with an existing one in the
// class and may cause a runtime error.
type AddMethodConflict struct{}

func (AddMethodConflict) Message() string {
	return "this annotation adds a method that conflicts with an existing method in the class, " +
		"it might cause a runtime error"
}
func (AddMethodConflict) fatal() bool { return false }

// NonClassRefDeprecation: a ref/wref points at a non-class type.
type NonClassRefDeprecation struct{}

func (NonClassRefDeprecation) Message() string {
	return "the type here contains a reference to a non-class type, refs and wrefs must always " +
		"point to a class, future versions of the compiler will reject this code"
}
func (NonClassRefDeprecation) fatal() bool { return false }

// ClassWithNoIndirectionDeprecation: a class type is used directly instead
// of through ref/wref.
type ClassWithNoIndirectionDeprecation struct{}

func (ClassWithNoIndirectionDeprecation) Message() string {
	return "the type here contains a class with no indirection, class types must be used through " +
		"ref or wref, future versions of the compiler will reject this code"
}
func (ClassWithNoIndirectionDeprecation) fatal() bool { return false }

// SyntaxError carries the set of tokens the parser expected instead.
type SyntaxError struct {
	Expected []string
}

func (e SyntaxError) Message() string {
	return fmt.Sprintf("syntax error, expected %v", e.Expected)
}
func (SyntaxError) fatal() bool { return true }

// CompileError wraps a fatal compile-time cause produced upstream of this
// core (e.g. by name resolution); Code is the cause's short error code.
type CompileError struct {
	Cause string
	Code  string
}

func (e CompileError) Message() string { return e.Cause }
func (CompileError) fatal() bool       { return true }

// CteError: a compile-time expression evaluation failed.
type CteError struct {
	Msg string
}

func (e CteError) Message() string {
	return fmt.Sprintf("compile-time expression error: %s", e.Msg)
}
func (CteError) fatal() bool { return true }
