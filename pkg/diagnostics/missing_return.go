package diagnostics

import "github.com/psiberx/redscript/pkg/ast"

// MissingReturnPass flags functions whose declared non-void return type is
// not guaranteed by every control-flow exit (spec §4.5, "Missing Return").
// A while loop never counts as guaranteeing a return, since its condition
// may be false on entry; an if/else guarantees one only when both arms do;
// a switch guarantees one only when every case (skipping empty,
// fall-through bodies) and an explicit default all do.
type MissingReturnPass struct{}

func (MissingReturnPass) Diagnose(body []ast.Expr, meta FunctionMetadata) []Diagnostic {
	if !meta.ReturnsValue {
		return nil
	}
	if allPathsReturn(body) {
		return nil
	}
	return []Diagnostic{{Kind: MissingReturn{}, Span: meta.Span}}
}

func allPathsReturn(exprs []ast.Expr) bool {
	for _, e := range exprs {
		if exprGuaranteesReturn(e) {
			return true
		}
	}
	return false
}

func exprGuaranteesReturn(e ast.Expr) bool {
	switch n := e.(type) {
	case ast.Return:
		return true
	case ast.Sequence:
		return allPathsReturn(n.Exprs)
	case ast.If:
		if n.Else == nil {
			return false
		}
		return allPathsReturn(n.Then.Exprs) && allPathsReturn(n.Else.Exprs)
	case ast.Switch:
		if n.Default == nil {
			return false
		}
		for _, c := range n.Cases {
			if c.Body.IsEmpty() {
				continue // falls through into the next case's body
			}
			if !allPathsReturn(c.Body.Exprs) {
				return false
			}
		}
		return allPathsReturn(n.Default.Exprs)
	default:
		return false
	}
}
