// Package emit implements the codegen core (spec §4): the Emitter, its
// Call Encoder and Intrinsics sub-modules, and the Label Resolver.
package emit

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/bytecode"
	"github.com/psiberx/redscript/pkg/opcode"
	"github.com/psiberx/redscript/pkg/pool"
	"github.com/psiberx/redscript/pkg/scope"
	"github.com/psiberx/redscript/pkg/sourcemap"
)

// Options configures an Emitter. The zero value is a usable default.
type Options struct {
	// Logger receives debug-level bookkeeping messages (one per label
	// minted). Non-fatal per §5: emission has no other observable
	// side effect. Defaults to zap.NewNop() when nil.
	Logger *zap.Logger

	// Metrics, when set, is incremented as instructions and labels are
	// emitted. Nil-safe when omitted.
	Metrics *Metrics
}

// Emitter walks a typed AST and produces a label-addressed instruction
// buffer for a single function body (spec §4.1). One instance is used per
// function body and discarded after emission (spec §5).
type Emitter struct {
	scope scope.Scope
	pool  pool.ConstantPool
	src   sourcemap.SourceMap
	log   *zap.Logger
	met   *Metrics

	instrs []bytecode.Instr
	labels int // count of minted labels

	// exitLabel is the active break target: the innermost loop or switch
	// exit label. It is meaningful only while hasExit is true (spec §4.1,
	// Break).
	exitLabel  bytecode.Label
	hasExit    bool
	callCache  *callCache
}

// FromBody produces a resolved instruction stream for a single function
// body (spec §4.1, the Emitter's contract). It borrows scope and p mutably
// for the duration of this call only.
func FromBody(
	body []ast.Expr,
	sc scope.Scope,
	p pool.ConstantPool,
	src sourcemap.SourceMap,
	opts Options,
) (bytecode.Code, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e := &Emitter{
		scope:     sc,
		pool:      p,
		src:       src,
		log:       log,
		met:       opts.Metrics,
		callCache: newCallCache(),
	}
	for _, expr := range body {
		if err := e.assembleSeq(expr); err != nil {
			return nil, err
		}
	}
	// Every function body ends with a terminating Nop appended by the
	// driver (spec §3, Invariant 5).
	e.emit(bytecode.Instr{Op: opcode.Nop})

	return e.resolve()
}

func (e *Emitter) emit(i bytecode.Instr) {
	e.instrs = append(e.instrs, i)
	if e.met != nil {
		e.met.instructionsEmitted.Inc()
	}
}

func (e *Emitter) emitTarget(l bytecode.Label) {
	e.instrs = append(e.instrs, bytecode.Target(l))
}

// newLabel mints a fresh, unique label (spec §3, "Label").
func (e *Emitter) newLabel() bytecode.Label {
	l := bytecode.Label(e.labels)
	e.labels++
	if e.met != nil {
		e.met.labelsMinted.Inc()
	}
	if e.log != nil {
		e.log.Debug("label minted", zap.Uint32("label", uint32(l)))
	}
	if e.labels > math.MaxUint32 {
		// Unreachable in practice; guards against silent wraparound.
		panic(errLabelNumberTooBig)
	}
	return l
}

// withExit runs fn with l as the active break target, restoring the
// previous target (if any) afterwards.
func (e *Emitter) withExit(l bytecode.Label, fn func() error) error {
	prevLabel, prevHas := e.exitLabel, e.hasExit
	e.exitLabel, e.hasExit = l, true
	err := fn()
	e.exitLabel, e.hasExit = prevLabel, prevHas
	return err
}

// assembleSeq emits each child of a Sequence-shaped expression in order,
// or a single expression directly if it isn't a Sequence (spec §4.1,
// "Sequence").
func (e *Emitter) assembleSeq(expr ast.Expr) error {
	if seq, ok := expr.(ast.Sequence); ok {
		for _, child := range seq.Exprs {
			if err := e.assemble(child); err != nil {
				return err
			}
		}
		return nil
	}
	return e.assemble(expr)
}

// assemble performs the depth-first, left-to-right dispatch over one typed
// expression: the opcode is emitted first, then its operands, which
// preserves the VM's prefix-argument invariant (spec §4.1, "Dispatch").
func (e *Emitter) assemble(expr ast.Expr) error {
	switch n := expr.(type) {
	case ast.Identifier:
		return e.assembleIdentifier(n)
	case ast.Constant:
		e.assembleConstant(n)
		return nil
	case ast.Cast:
		return e.assembleCast(n)
	case ast.Declare:
		return e.assembleDeclare(n)
	case ast.Assign:
		e.emit(bytecode.Instr{Op: opcode.Assign})
		if err := e.assemble(n.Lhs); err != nil {
			return err
		}
		return e.assemble(n.Rhs)
	case ast.ArrayElem:
		return e.assembleArrayElem(n)
	case ast.New:
		return e.assembleNew(n)
	case ast.Return:
		return e.assembleReturn(n)
	case ast.Sequence:
		return e.assembleSeq(n)
	case ast.Switch:
		return e.assembleSwitch(n)
	case ast.If:
		return e.assembleIf(n)
	case ast.Conditional:
		return e.assembleConditional(n)
	case ast.While:
		return e.assembleWhile(n)
	case ast.Member:
		return e.assembleMember(n)
	case ast.Call:
		if n.Callable.IsIntrinsic {
			return e.assembleIntrinsic(n)
		}
		return e.assembleCall(n.Callable.Function, n.Args, n.ArgTypes, false, n.Span())
	case ast.MethodCall:
		return e.assembleMethodCall(n)
	case ast.Null:
		e.emit(bytecode.Instr{Op: opcode.Null})
		return nil
	case ast.This:
		e.emit(bytecode.Instr{Op: opcode.This})
		return nil
	case ast.Super:
		e.emit(bytecode.Instr{Op: opcode.This})
		return nil
	case ast.Break:
		if !e.hasExit {
			return &UnsupportedFeatureError{Feature: "Break", Span: n.Span()}
		}
		e.emit(bytecode.Instr{Op: opcode.Jump, Labels: []bytecode.Label{e.exitLabel}})
		return nil
	case ast.ArrayLit:
		return &UnsupportedFeatureError{Feature: n.FeatureName(), Span: n.Span()}
	case ast.InterpolatedString:
		return &UnsupportedFeatureError{Feature: n.FeatureName(), Span: n.Span()}
	case ast.ForIn:
		return &UnsupportedFeatureError{Feature: n.FeatureName(), Span: n.Span()}
	case ast.BinOp:
		return &UnsupportedFeatureError{Feature: n.FeatureName(), Span: n.Span()}
	case ast.UnOp:
		return &UnsupportedFeatureError{Feature: n.FeatureName(), Span: n.Span()}
	case ast.Goto:
		return &UnsupportedFeatureError{Feature: n.FeatureName(), Span: n.Span()}
	default:
		return fmt.Errorf("emit: unhandled expression type %T", expr)
	}
}

func (e *Emitter) assembleIdentifier(n ast.Identifier) error {
	ref := n.Ref
	if !ref.IsValue {
		return &UnexpectedTokenError{Token: "symbol", Span: n.Span()}
	}
	switch ref.ValueKind {
	case ast.ValueLocal:
		e.emit(bytecode.Instr{Op: opcode.Local, Int: []int64{int64(ref.Slot)}})
	case ast.ValueParam:
		e.emit(bytecode.Instr{Op: opcode.Param, Int: []int64{int64(ref.Slot)}})
	}
	return nil
}

func (e *Emitter) assembleConstant(c ast.Constant) {
	switch c.Literal {
	case ast.LitString:
		idx := e.pool.AddString(c.Str)
		e.emit(bytecode.Instr{Op: opcode.StringConst, Int: []int64{int64(idx)}})
	case ast.LitName:
		idx := e.pool.AddName(c.Str)
		e.emit(bytecode.Instr{Op: opcode.NameConst, Int: []int64{int64(idx)}})
	case ast.LitResource:
		idx := e.pool.AddResource(c.Str)
		e.emit(bytecode.Instr{Op: opcode.ResourceConst, Int: []int64{int64(idx)}})
	case ast.LitTweakDBID:
		idx := e.pool.AddTweakDBID(c.Str)
		e.emit(bytecode.Instr{Op: opcode.TweakDBIdConst, Int: []int64{int64(idx)}})
	case ast.LitF32:
		e.emit(bytecode.Instr{Op: opcode.F32Const, Int: []int64{int64(math.Float32bits(c.F32))}})
	case ast.LitF64:
		e.emit(bytecode.Instr{Op: opcode.F64Const, Int: []int64{int64(math.Float64bits(c.F64))}})
	case ast.LitI32:
		e.emit(bytecode.Instr{Op: opcode.I32Const, Int: []int64{int64(c.I32)}})
	case ast.LitI64:
		e.emit(bytecode.Instr{Op: opcode.I64Const, Int: []int64{c.I64}})
	case ast.LitU32:
		e.emit(bytecode.Instr{Op: opcode.U32Const, Int: []int64{int64(c.U32)}})
	case ast.LitU64:
		e.emit(bytecode.Instr{Op: opcode.U64Const, Int: []int64{int64(c.U64)}})
	case ast.LitBool:
		if c.Bool {
			e.emit(bytecode.Instr{Op: opcode.TrueConst})
		} else {
			e.emit(bytecode.Instr{Op: opcode.FalseConst})
		}
	}
}

func (e *Emitter) assembleCast(n ast.Cast) error {
	if n.Type.Kind != ast.TypeClass {
		return &UnsupportedOperationError{Op: "casting", Type: typeName(n.Type), Span: n.Span()}
	}
	e.emit(bytecode.Instr{Op: opcode.DynamicCast, Int: []int64{int64(n.Type.Index), 0}})
	return e.assemble(n.Inner)
}

func (e *Emitter) assembleArrayElem(n ast.ArrayElem) error {
	switch n.ContainerType.Kind {
	case ast.TypeArray:
		idx, err := e.scope.GetTypeIndex(n.ContainerType, e.pool)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayElement, Int: []int64{int64(idx)}})
	case ast.TypeStaticArray:
		idx, err := e.scope.GetTypeIndex(n.ContainerType, e.pool)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{Op: opcode.StaticArrayElement, Int: []int64{int64(idx)}})
	default:
		return &UnsupportedOperationError{Op: "indexing", Type: typeName(n.ContainerType), Span: n.Span()}
	}
	if err := e.assemble(n.Container); err != nil {
		return err
	}
	return e.assemble(n.Index)
}

func (e *Emitter) assembleNew(n ast.New) error {
	switch n.Type.Kind {
	case ast.TypeClass:
		e.emit(bytecode.Instr{Op: opcode.New, Int: []int64{int64(n.Type.Index)}})
		return nil
	case ast.TypeStruct:
		e.emit(bytecode.Instr{Op: opcode.Construct, Int: []int64{int64(len(n.Args)), int64(n.Type.Index)}})
		for _, arg := range n.Args {
			if err := e.assemble(arg); err != nil {
				return err
			}
		}
		return nil
	default:
		return &UnsupportedOperationError{Op: "constructing", Type: typeName(n.Type), Span: n.Span()}
	}
}

func (e *Emitter) assembleReturn(n ast.Return) error {
	e.emit(bytecode.Instr{Op: opcode.Return})
	if n.Value != nil {
		return e.assemble(n.Value)
	}
	// A bare return still needs a unary opcode's operand slot filled
	// (spec §4.1, "Return").
	e.emit(bytecode.Instr{Op: opcode.Nop})
	return nil
}

func (e *Emitter) assembleMember(n ast.Member) error {
	switch n.Resolved.Kind {
	case ast.MemberClassField:
		exit := e.newLabel()
		e.emit(bytecode.Instr{Op: opcode.Context, Labels: []bytecode.Label{exit}})
		if err := e.assemble(n.Receiver); err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ObjectField, Int: []int64{int64(n.Resolved.Field)}})
		e.emitTarget(exit)
		return nil
	case ast.MemberStructField:
		e.emit(bytecode.Instr{Op: opcode.StructField, Int: []int64{int64(n.Resolved.Field)}})
		return e.assemble(n.Receiver)
	case ast.MemberEnumMember:
		e.emit(bytecode.Instr{Op: opcode.EnumConst, Int: []int64{int64(n.Resolved.Enum), int64(n.Resolved.EnumMember)}})
		return nil
	default:
		return fmt.Errorf("emit: unhandled member kind %v", n.Resolved.Kind)
	}
}

func (e *Emitter) assembleMethodCall(n ast.MethodCall) error {
	if recv, ok := n.Receiver.(ast.Identifier); ok && !recv.Ref.IsValue &&
		(recv.Ref.SymbolKind == ast.SymbolClass || recv.Ref.SymbolKind == ast.SymbolStruct || recv.Ref.SymbolKind == ast.SymbolEnum) {
		return e.assembleCall(n.FuncIndex, n.Args, n.ArgTypes, true, n.Span())
	}
	forceStatic := n.IsSuperRcv
	exit := e.newLabel()
	e.emit(bytecode.Instr{Op: opcode.Context, Labels: []bytecode.Label{exit}})
	if err := e.assemble(n.Receiver); err != nil {
		return err
	}
	if err := e.assembleCall(n.FuncIndex, n.Args, n.ArgTypes, forceStatic, n.Span()); err != nil {
		return err
	}
	e.emitTarget(exit)
	return nil
}

func typeName(t ast.TypeID) string {
	switch t.Kind {
	case ast.TypePrimitive:
		return fmt.Sprintf("primitive#%d", t.Index)
	case ast.TypeClass:
		return fmt.Sprintf("class#%d", t.Index)
	case ast.TypeStruct:
		return fmt.Sprintf("struct#%d", t.Index)
	case ast.TypeEnum:
		return fmt.Sprintf("enum#%d", t.Index)
	case ast.TypeRef:
		return "ref<" + typeName(*t.Inner) + ">"
	case ast.TypeWeakRef:
		return "wref<" + typeName(*t.Inner) + ">"
	case ast.TypeArray:
		return "array<" + typeName(*t.Inner) + ">"
	case ast.TypeStaticArray:
		return fmt.Sprintf("array<%s; %d>", typeName(*t.Inner), t.Size)
	case ast.TypeScriptRef:
		return "script_ref<" + typeName(*t.Inner) + ">"
	case ast.TypeVariant:
		return "Variant"
	case ast.TypeNull:
		return "Null"
	default:
		return "?"
	}
}
