package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/opcode"
)

func TestAssembleConditionalLowersToConditionalOpcode(t *testing.T) {
	n := ast.NewConditional(ast.NewThis(ast.Zero), ast.NewConstantI32(1, ast.Zero), ast.NewConstantI32(2, ast.Zero), ast.Zero)

	code, err := FromBody([]ast.Expr{n}, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []opcode.Opcode{
		opcode.Conditional,
		opcode.This,
		opcode.I32Const,
		opcode.I32Const,
		opcode.Nop,
	}, ops(code))
	assert.False(t, code.HasPseudoInstructions())
}

func TestAssembleIfNoElseSkipsJump(t *testing.T) {
	n := ast.NewIf(ast.NewThis(ast.Zero), ast.NewSequence([]ast.Expr{ast.NewReturn(nil, ast.Zero)}, ast.Zero), nil, ast.Zero)

	code, err := FromBody([]ast.Expr{n}, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []opcode.Opcode{
		opcode.JumpIfFalse,
		opcode.This,
		opcode.Return, opcode.Nop,
		opcode.Nop,
	}, ops(code))
}

func TestAssembleWhileNestedIfBreak(t *testing.T) {
	inner := ast.NewIf(ast.NewThis(ast.Zero), ast.NewSequence([]ast.Expr{ast.NewBreak(ast.Zero)}, ast.Zero), nil, ast.Zero)
	loop := ast.NewWhile(ast.NewThis(ast.Zero), ast.NewSequence([]ast.Expr{inner}, ast.Zero), ast.Zero)

	code, err := FromBody([]ast.Expr{loop}, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []opcode.Opcode{
		opcode.JumpIfFalse, opcode.This,
		opcode.JumpIfFalse, opcode.This,
		opcode.Jump, // break -> loop's exit label
		opcode.Jump, // loop back-edge
		opcode.Nop,
	}, ops(code))
}

func TestAssembleBreakOutsideLoopIsUnsupportedFeature(t *testing.T) {
	body := []ast.Expr{ast.NewBreak(ast.Zero)}
	_, err := FromBody(body, newTestScope(), newTestPool(), fakeSourceMap{}, Options{})
	require.Error(t, err)
	var unsupported *UnsupportedFeatureError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "Break", unsupported.Feature)
}
