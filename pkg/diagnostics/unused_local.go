package diagnostics

import "github.com/psiberx/redscript/pkg/ast"

// UnusedLocalPass flags locals whose declaration is never read (spec §4.5,
// "Unused Local"). Neither the declaration (with or without an initializer)
// nor an assignment to the local counts as a read; any other occurrence of
// it does.
type UnusedLocalPass struct{}

func (UnusedLocalPass) Diagnose(body []ast.Expr, _ FunctionMetadata) []Diagnostic {
	declared := map[uint16]ast.Span{}
	read := map[uint16]bool{}

	var visitReads func(e ast.Expr)
	visitReads = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case ast.Identifier:
			if n.Ref.IsValue && n.Ref.ValueKind == ast.ValueLocal {
				read[n.Ref.Slot] = true
			}
		case ast.Cast:
			visitReads(n.Inner)
		case ast.Declare:
			if _, ok := declared[n.Local]; !ok {
				declared[n.Local] = n.Span()
			}
			visitReads(n.Init)
		case ast.Assign:
			// The LHS of an assignment is a store, not a read — unless
			// it's something other than a bare local (a member or
			// array-element write still reads its receiver/index).
			if id, ok := n.Lhs.(ast.Identifier); !ok || !(id.Ref.IsValue && id.Ref.ValueKind == ast.ValueLocal) {
				visitReads(n.Lhs)
			}
			visitReads(n.Rhs)
		case ast.ArrayElem:
			visitReads(n.Container)
			visitReads(n.Index)
		case ast.New:
			for _, a := range n.Args {
				visitReads(a)
			}
		case ast.Return:
			visitReads(n.Value)
		case ast.Sequence:
			for _, c := range n.Exprs {
				visitReads(c)
			}
		case ast.Switch:
			visitReads(n.Scrutinee)
			for _, c := range n.Cases {
				visitReads(c.Matcher)
				visitReads(c.Body)
			}
			if n.Default != nil {
				visitReads(*n.Default)
			}
		case ast.If:
			visitReads(n.Cond)
			visitReads(n.Then)
			if n.Else != nil {
				visitReads(*n.Else)
			}
		case ast.Conditional:
			visitReads(n.Cond)
			visitReads(n.True)
			visitReads(n.False)
		case ast.While:
			visitReads(n.Cond)
			visitReads(n.Body)
		case ast.Member:
			visitReads(n.Receiver)
		case ast.Call:
			for _, a := range n.Args {
				visitReads(a)
			}
		case ast.MethodCall:
			visitReads(n.Receiver)
			for _, a := range n.Args {
				visitReads(a)
			}
		}
	}
	for _, e := range body {
		visitReads(e)
	}

	var out []Diagnostic
	for slot, span := range declared {
		if !read[slot] {
			out = append(out, Diagnostic{Kind: UnusedLocal{}, Span: span})
		}
	}
	return out
}
