package diagnostics

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/pool"
)

// FunctionMetadata is the context every pass receives alongside a function
// body: its pool flags, whether it was a registered callback, and its
// source span (spec §4.5).
type FunctionMetadata struct {
	Flags       pool.FunctionFlags
	WasCallback bool
	Span        ast.Span

	// ReturnsValue is true when the function's declared return type is not
	// void — only such functions are subject to MissingReturnPass.
	ReturnsValue bool
}

func NewFunctionMetadata(flags pool.FunctionFlags, wasCallback bool, returnsValue bool, span ast.Span) FunctionMetadata {
	return FunctionMetadata{Flags: flags, WasCallback: wasCallback, Span: span, ReturnsValue: returnsValue}
}

// Pass analyzes one function body and returns the diagnostics it finds. A
// pass never mutates the AST and never consults any other pass's output
// (spec §4.5, "independent passes").
type Pass interface {
	Diagnose(body []ast.Expr, meta FunctionMetadata) []Diagnostic
}

// Options configures a Pipeline. The zero value is a usable default: no
// logging, no metrics.
type Options struct {
	Logger  *zap.Logger
	Metrics *Metrics
}

// Pipeline runs a fixed set of Passes over one function body per Run call.
type Pipeline struct {
	passes []Pass
	log    *zap.Logger
	met    *Metrics
}

// NewPipeline builds a Pipeline running passes in the given order. The four
// required passes (spec §4.5) are typically supplied by NewDefaultPasses.
func NewPipeline(passes []Pass, opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{passes: passes, log: log, met: opts.Metrics}
}

// NewDefaultPasses returns the four passes required by spec §4.5, in the
// order their findings are typically reviewed: correctness-affecting
// fatal passes last so they're the ones most visible in truncated output.
func NewDefaultPasses() []Pass {
	return []Pass{
		UnusedLocalPass{},
		MissingReturnPass{},
		StatementFallthroughPass{},
		InvalidTemporaryUsePass{},
	}
}

// Run executes every configured pass over body and returns the union of
// their findings. Each invocation is tagged with a fresh RunID so that
// diagnostics logged from a process compiling many function bodies
// concurrently can be correlated back to this one call.
func (p *Pipeline) Run(body []ast.Expr, meta FunctionMetadata) []Diagnostic {
	runID := uuid.New()
	log := p.log.With(zap.String("run_id", runID.String()))

	var out []Diagnostic
	for _, pass := range p.passes {
		found := pass.Diagnose(body, meta)
		for _, d := range found {
			if p.met != nil {
				p.met.diagnosticsTotal.WithLabelValues(severityLabel(d.IsFatal())).Inc()
			}
			if d.IsFatal() {
				log.Error(d.String())
			} else {
				log.Warn(d.String())
			}
		}
		out = append(out, found...)
	}
	return out
}

func severityLabel(fatal bool) string {
	if fatal {
		return "fatal"
	}
	return "warning"
}

// walk visits every expression reachable from body, depth-first, calling
// visit on each. It does not recurse into nested function bodies (this AST
// has none — closures are out of scope per §1) but does recurse into every
// structural child an Expr variant carries.
func walk(body []ast.Expr, visit func(ast.Expr)) {
	for _, e := range body {
		walkExpr(e, visit)
	}
}

func walkExpr(e ast.Expr, visit func(ast.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case ast.Cast:
		walkExpr(n.Inner, visit)
	case ast.Declare:
		walkExpr(n.Init, visit)
	case ast.Assign:
		walkExpr(n.Lhs, visit)
		walkExpr(n.Rhs, visit)
	case ast.ArrayElem:
		walkExpr(n.Container, visit)
		walkExpr(n.Index, visit)
	case ast.New:
		for _, a := range n.Args {
			walkExpr(a, visit)
		}
	case ast.Return:
		walkExpr(n.Value, visit)
	case ast.Sequence:
		for _, c := range n.Exprs {
			walkExpr(c, visit)
		}
	case ast.Switch:
		walkExpr(n.Scrutinee, visit)
		for _, c := range n.Cases {
			walkExpr(c.Matcher, visit)
			walkExpr(c.Body, visit)
		}
		if n.Default != nil {
			walkExpr(*n.Default, visit)
		}
	case ast.If:
		walkExpr(n.Cond, visit)
		walkExpr(n.Then, visit)
		if n.Else != nil {
			walkExpr(*n.Else, visit)
		}
	case ast.Conditional:
		walkExpr(n.Cond, visit)
		walkExpr(n.True, visit)
		walkExpr(n.False, visit)
	case ast.While:
		walkExpr(n.Cond, visit)
		walkExpr(n.Body, visit)
	case ast.Member:
		walkExpr(n.Receiver, visit)
	case ast.Call:
		for _, a := range n.Args {
			walkExpr(a, visit)
		}
	case ast.MethodCall:
		walkExpr(n.Receiver, visit)
		for _, a := range n.Args {
			walkExpr(a, visit)
		}
	}
}
