package diagnostics

import "github.com/psiberx/redscript/pkg/ast"

// StatementFallthroughPass flags switch cases whose bodies are non-empty
// but don't end in a break or return (spec §4.5, "Statement Fall-Through").
// Fatal: case bodies are emitted back to back with no implicit jump to the
// switch exit, so an unterminated case body would silently run into the
// next case's code at runtime.
type StatementFallthroughPass struct{}

func (StatementFallthroughPass) Diagnose(body []ast.Expr, _ FunctionMetadata) []Diagnostic {
	var out []Diagnostic
	walk(body, func(e ast.Expr) {
		sw, ok := e.(ast.Switch)
		if !ok {
			return
		}
		for _, c := range sw.Cases {
			if !c.Body.IsEmpty() && !bodyIsTerminal(c.Body) {
				out = append(out, Diagnostic{Kind: StatementFallthrough{}, Span: c.Body.Span()})
			}
		}
		if sw.Default != nil && !sw.Default.IsEmpty() && !bodyIsTerminal(*sw.Default) {
			out = append(out, Diagnostic{Kind: StatementFallthrough{}, Span: sw.Default.Span()})
		}
	})
	return out
}

// bodyIsTerminal reports whether seq's last effective statement is a break
// or a return, unwrapping trailing nested sequences.
func bodyIsTerminal(seq ast.Sequence) bool {
	last := lastEffectiveExpr(seq)
	switch last.(type) {
	case ast.Break, ast.Return:
		return true
	default:
		return false
	}
}

func lastEffectiveExpr(seq ast.Sequence) ast.Expr {
	if len(seq.Exprs) == 0 {
		return nil
	}
	last := seq.Exprs[len(seq.Exprs)-1]
	if nested, ok := last.(ast.Sequence); ok {
		return lastEffectiveExpr(nested)
	}
	return last
}
