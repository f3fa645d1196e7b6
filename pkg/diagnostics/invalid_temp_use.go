package diagnostics

import "github.com/psiberx/redscript/pkg/ast"

// InvalidTemporaryUsePass flags expressions that take the address of, or
// hold a reference to, a temporary value (spec §4.5, "Invalid Temporary
// Use") — an AsRef intrinsic call whose argument isn't an l-value. Fatal:
// the resulting ScriptRef would dangle once the temporary is discarded.
type InvalidTemporaryUsePass struct{}

func (InvalidTemporaryUsePass) Diagnose(body []ast.Expr, _ FunctionMetadata) []Diagnostic {
	var out []Diagnostic
	walk(body, func(e ast.Expr) {
		call, ok := e.(ast.Call)
		if !ok || !call.Callable.IsIntrinsic || call.Callable.Intrinsic != ast.AsRef {
			return
		}
		if len(call.Args) == 0 {
			return
		}
		if !exprIsLvalue(call.Args[0]) {
			out = append(out, Diagnostic{Kind: InvalidUseOfTemporary{}, Span: call.Args[0].Span()})
		}
	})
	return out
}

// exprIsLvalue reports whether expr denotes a storage location (a local, a
// parameter, a field, or an array element) rather than a temporary value.
func exprIsLvalue(expr ast.Expr) bool {
	switch n := expr.(type) {
	case ast.Identifier:
		return n.Ref.IsValue
	case ast.Member:
		return true
	case ast.ArrayElem:
		return true
	default:
		return false
	}
}
