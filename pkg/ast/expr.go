package ast

// Expr is a typed expression node (spec §3, "Typed Expression"). Every
// concrete type below implements it. The emitter performs a depth-first,
// left-to-right dispatch over these with a type switch (see
// pkg/emit.Emitter.assemble).
type Expr interface {
	Span() Span
	exprNode()
}

type base struct{ span Span }

func (b base) Span() Span { return b.span }
func (base) exprNode()    {}

// Literal tags which kind of constant a Constant expression carries.
type Literal byte

const (
	LitString Literal = iota
	LitName
	LitResource
	LitTweakDBID
	LitF32
	LitF64
	LitI32
	LitI64
	LitU32
	LitU64
	LitBool
)

// Constant is a literal of a typed kind.
type Constant struct {
	base
	Literal Literal
	Str     string // valid for LitString, LitName, LitResource, LitTweakDBID
	F32     float32
	F64     float64
	I32     int32
	I64     int64
	U32     uint32
	U64     uint64
	Bool    bool
}

func NewConstantString(lit Literal, s string, span Span) Constant {
	return Constant{base: base{span}, Literal: lit, Str: s}
}
func NewConstantF32(v float32, span Span) Constant { return Constant{base: base{span}, Literal: LitF32, F32: v} }
func NewConstantF64(v float64, span Span) Constant { return Constant{base: base{span}, Literal: LitF64, F64: v} }
func NewConstantI32(v int32, span Span) Constant   { return Constant{base: base{span}, Literal: LitI32, I32: v} }
func NewConstantI64(v int64, span Span) Constant   { return Constant{base: base{span}, Literal: LitI64, I64: v} }
func NewConstantU32(v uint32, span Span) Constant  { return Constant{base: base{span}, Literal: LitU32, U32: v} }
func NewConstantU64(v uint64, span Span) Constant  { return Constant{base: base{span}, Literal: LitU64, U64: v} }
func NewConstantBool(v bool, span Span) Constant   { return Constant{base: base{span}, Literal: LitBool, Bool: v} }

// Identifier resolves to a Reference (spec §4.1, "Identifier").
type Identifier struct {
	base
	Ref Reference
}

func NewIdentifier(ref Reference, span Span) Identifier {
	return Identifier{base: base{span}, Ref: ref}
}

// Cast converts Inner to Type.
type Cast struct {
	base
	Type  TypeID
	Inner Expr
}

func NewCast(typ TypeID, inner Expr, span Span) Cast {
	return Cast{base: base{span}, Type: typ, Inner: inner}
}

// Declare introduces a local slot, with an optional declared type (required
// when Init is nil) and an optional initializer.
type Declare struct {
	base
	Local uint16
	Type  *TypeID
	Init  Expr // nil if uninitialized
}

func NewDeclare(local uint16, typ *TypeID, init Expr, span Span) Declare {
	return Declare{base: base{span}, Local: local, Type: typ, Init: init}
}

// Assign stores the value of Rhs into Lhs.
type Assign struct {
	base
	Lhs, Rhs Expr
}

func NewAssign(lhs, rhs Expr, span Span) Assign {
	return Assign{base: base{span}, Lhs: lhs, Rhs: rhs}
}

// ArrayElem indexes Container by Index.
type ArrayElem struct {
	base
	Container Expr
	Index     Expr
	// ContainerType is the typechecker's resolved type of Container,
	// needed to pick the dynamic- vs static-array opcode (§4.1).
	ContainerType TypeID
}

func NewArrayElem(container, index Expr, containerType TypeID, span Span) ArrayElem {
	return ArrayElem{base: base{span}, Container: container, Index: index, ContainerType: containerType}
}

// New allocates a Class (no constructor arguments) or constructs a Struct
// (with arguments).
type New struct {
	base
	Type TypeID
	Args []Expr
}

func NewNew(typ TypeID, args []Expr, span Span) New {
	return New{base: base{span}, Type: typ, Args: args}
}

// Return optionally carries a value.
type Return struct {
	base
	Value Expr // nil for a bare return
}

func NewReturn(value Expr, span Span) Return {
	return Return{base: base{span}, Value: value}
}

// Sequence is an ordered list of expressions, e.g. a block body.
type Sequence struct {
	base
	Exprs []Expr
}

func NewSequence(exprs []Expr, span Span) Sequence {
	return Sequence{base: base{span}, Exprs: exprs}
}

// IsEmpty reports whether the sequence has no expressions, or contains only
// other empty sequences — used to detect switch-case fall-through (§4.1.b).
func (s Sequence) IsEmpty() bool {
	for _, e := range s.Exprs {
		if !isEmptyExpr(e) {
			return false
		}
	}
	return true
}

func isEmptyExpr(e Expr) bool {
	if seq, ok := e.(Sequence); ok {
		return seq.IsEmpty()
	}
	return false
}

// Case is one arm of a Switch.
type Case struct {
	Matcher Expr
	Body    Sequence
}

// Switch compiles to a chain of labeled comparisons (§4.1.b).
type Switch struct {
	base
	Scrutinee     Expr
	ScrutineeType TypeID
	Cases         []Case
	Default       *Sequence
}

func NewSwitch(scrutinee Expr, scrutineeType TypeID, cases []Case, def *Sequence, span Span) Switch {
	return Switch{base: base{span}, Scrutinee: scrutinee, ScrutineeType: scrutineeType, Cases: cases, Default: def}
}

// If is an if/else with an optional else-branch.
type If struct {
	base
	Cond Expr
	Then Sequence
	Else *Sequence
}

func NewIf(cond Expr, then Sequence, els *Sequence, span Span) If {
	return If{base: base{span}, Cond: cond, Then: then, Else: els}
}

// Conditional is a ternary expression.
type Conditional struct {
	base
	Cond, True, False Expr
}

func NewConditional(cond, t, f Expr, span Span) Conditional {
	return Conditional{base: base{span}, Cond: cond, True: t, False: f}
}

// While is a pre-tested loop.
type While struct {
	base
	Cond Expr
	Body Sequence
}

func NewWhile(cond Expr, body Sequence, span Span) While {
	return While{base: base{span}, Cond: cond, Body: body}
}

// Member accesses a resolved field or enum constant through Receiver.
type Member struct {
	base
	Receiver Expr
	Resolved MemberRef
}

func NewMember(receiver Expr, resolved MemberRef, span Span) Member {
	return Member{base: base{span}, Receiver: receiver, Resolved: resolved}
}

// Call invokes a Callable with an argument vector. ArgTypes carries each
// argument's resolved static type, as handed down by the typechecker: the
// intrinsics dispatcher (§4.3) needs it to choose, e.g., the static- vs.
// dynamic-array opcode, and the Call Encoder (§4.2) needs it to detect an
// rvalue reference to a ScriptRef<T> without re-deriving the type itself.
type Call struct {
	base
	Callable Callable
	Args     []Expr
	ArgTypes []TypeID
}

func NewCall(callable Callable, args []Expr, argTypes []TypeID, span Span) Call {
	return Call{base: base{span}, Callable: callable, Args: args, ArgTypes: argTypes}
}

func NewIntrinsicCall(callable Callable, args []Expr, argTypes []TypeID, span Span) Call {
	return NewCall(callable, args, argTypes, span)
}

// MethodCall invokes the function at FuncIndex on Receiver. ArgTypes carries
// each argument's resolved static type, same role as Call.ArgTypes.
type MethodCall struct {
	base
	Receiver   Expr
	FuncIndex  PoolIndex
	Args       []Expr
	ArgTypes   []TypeID
	IsSuperRcv bool // true when Receiver is a Super node
}

func NewMethodCall(receiver Expr, funcIndex PoolIndex, args []Expr, argTypes []TypeID, span Span) MethodCall {
	return MethodCall{base: base{span}, Receiver: receiver, FuncIndex: funcIndex, Args: args, ArgTypes: argTypes}
}

// Null, This, Super, Break are nullary node kinds.
type (
	Null  struct{ base }
	This  struct{ base }
	Super struct{ base }
	Break struct{ base }
)

func NewNull(span Span) Null   { return Null{base{span}} }
func NewThis(span Span) This   { return This{base{span}} }
func NewSuper(span Span) Super { return Super{base{span}} }
func NewBreak(span Span) Break { return Break{base{span}} }

// Unemittable shapes: present in the wider AST but expected to be lowered
// by the typechecker before reaching the core. Encountering one here is a
// compile error (spec §3, §7 UnsupportedFeature).
type (
	ArrayLit struct {
		base
		Name string
	}
	InterpolatedString struct{ base }
	ForIn              struct{ base }
	BinOp              struct{ base }
	UnOp               struct{ base }
	Goto               struct{ base }
)

// FeatureName identifies the unsupported-feature name to report for err
// messages (spec §7), for the unemittable node kinds above.
func (ArrayLit) FeatureName() string           { return "ArrayLit" }
func (InterpolatedString) FeatureName() string { return "InterpolatedString" }
func (ForIn) FeatureName() string              { return "For-in" }
func (BinOp) FeatureName() string              { return "BinOp" }
func (UnOp) FeatureName() string               { return "UnOp" }
func (Goto) FeatureName() string               { return "Goto" }
