package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/opcode"
	"github.com/psiberx/redscript/pkg/pool"
)

// These mirror the end-to-end scenarios of spec §8 verbatim.

func TestScenarioEmptyReturn(t *testing.T) {
	body := []ast.Expr{ast.NewReturn(nil, ast.Zero)}
	code, err := FromBody(body, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []opcode.Opcode{opcode.Return, opcode.Nop, opcode.Nop}, ops(code))
}

func TestScenarioIntLocalWithInitializer(t *testing.T) {
	typ := ast.Primitive(int32PrimIdx)
	body := []ast.Expr{
		ast.NewDeclare(0, &typ, ast.NewConstantI32(7, ast.Zero), ast.Zero),
	}
	code, err := FromBody(body, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []opcode.Opcode{opcode.Assign, opcode.Local, opcode.I32Const, opcode.Nop}, ops(code))
	assert.Equal(t, int64(7), code[2].Int[0])
}

func TestScenarioUninitializedBool(t *testing.T) {
	typ := ast.Primitive(boolPrimIdx)
	body := []ast.Expr{ast.NewDeclare(0, &typ, nil, ast.Zero)}
	code, err := FromBody(body, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []opcode.Opcode{opcode.Assign, opcode.Local, opcode.FalseConst, opcode.Nop}, ops(code))
}

func TestScenarioIfElse(t *testing.T) {
	p := newTestPool()
	p.Functions[10] = pool.FunctionDef{Flags: pool.FunctionFlags{Static: true}}
	p.Functions[11] = pool.FunctionDef{Flags: pool.FunctionFlags{Static: true}}

	aCall := ast.NewCall(ast.FunctionCallable(10), nil, nil, ast.Zero)
	bCall := ast.NewCall(ast.FunctionCallable(11), nil, nil, ast.Zero)
	elseSeq := ast.NewSequence([]ast.Expr{bCall}, ast.Zero)
	n := ast.NewIf(ast.NewThis(ast.Zero), ast.NewSequence([]ast.Expr{aCall}, ast.Zero), &elseSeq, ast.Zero)

	code, err := FromBody([]ast.Expr{n}, newTestScope(), p, fakeSourceMap{}, Options{})
	require.NoError(t, err)

	got := ops(code)
	assert.Equal(t, []opcode.Opcode{
		opcode.JumpIfFalse, opcode.This,
		opcode.InvokeStatic, opcode.ParamEnd,
		opcode.Jump,
		opcode.InvokeStatic, opcode.ParamEnd,
		opcode.Nop,
	}, got)

	// Invariant: no Target pseudo-instructions survive resolution.
	assert.False(t, code.HasPseudoInstructions())
}

func TestScenarioWhileWithBreak(t *testing.T) {
	inner := ast.NewIf(ast.NewThis(ast.Zero), ast.NewSequence([]ast.Expr{ast.NewBreak(ast.Zero)}, ast.Zero), nil, ast.Zero)
	loop := ast.NewWhile(ast.NewThis(ast.Zero), ast.NewSequence([]ast.Expr{inner}, ast.Zero), ast.Zero)

	code, err := FromBody([]ast.Expr{loop}, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []opcode.Opcode{
		opcode.JumpIfFalse, opcode.This,
		opcode.JumpIfFalse, opcode.This,
		opcode.Jump,
		opcode.Jump,
		opcode.Nop,
	}, ops(code))
	assert.False(t, code.HasPseudoInstructions())
}

func TestScenarioVirtualCallWithScriptRefArg(t *testing.T) {
	p := newTestPool()
	p.Functions[20] = pool.FunctionDef{Parameters: []ast.PoolIndex{100}}
	p.Parameters[100] = pool.ParameterDef{}
	p.Definitions[20] = pool.Definition{Name: p.AddName("Foo")}

	xIdentifier := ast.NewIdentifier(ast.ValueRef(ast.ValueLocal, 0), ast.Zero)
	asRef := ast.NewIntrinsicCall(
		ast.IntrinsicCallable(ast.AsRef, ast.ScriptRef(ast.Primitive(int32PrimIdx))),
		[]ast.Expr{xIdentifier},
		[]ast.TypeID{ast.Primitive(int32PrimIdx)},
		ast.Zero,
	)
	method := ast.NewMethodCall(
		ast.NewThis(ast.Zero), 20, []ast.Expr{asRef},
		[]ast.TypeID{ast.ScriptRef(ast.Primitive(int32PrimIdx))},
		ast.Zero,
	)

	code, err := FromBody([]ast.Expr{method}, newTestScope(), p, fakeSourceMap{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []opcode.Opcode{
		opcode.Context,
		opcode.This,
		opcode.InvokeVirtual,
		opcode.AsRef, opcode.Local,
		opcode.ParamEnd,
		opcode.Nop,
	}, ops(code))

	// invoke_flags bit 0 must be 0: AsRef(x) where x is already an l-value
	// is not itself an rvalue reference.
	var invoke = code[2]
	assert.Equal(t, opcode.InvokeVirtual, invoke.Op)
	assert.Equal(t, int64(0), invoke.Int[2])
}
