package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psiberx/redscript/pkg/ast"
)

func local(slot uint16) ast.Identifier {
	return ast.NewIdentifier(ast.ValueRef(ast.ValueLocal, slot), ast.Zero)
}

func TestUnusedLocalFlagsNeverRead(t *testing.T) {
	typ := ast.Primitive(1)
	body := []ast.Expr{ast.NewDeclare(0, &typ, ast.NewConstantI32(1, ast.Zero), ast.Zero)}
	found := UnusedLocalPass{}.Diagnose(body, FunctionMetadata{})
	assert.Len(t, found, 1)
	assert.IsType(t, UnusedLocal{}, found[0].Kind)
}

func TestUnusedLocalDoesNotFlagRead(t *testing.T) {
	typ := ast.Primitive(1)
	body := []ast.Expr{
		ast.NewDeclare(0, &typ, ast.NewConstantI32(1, ast.Zero), ast.Zero),
		ast.NewReturn(local(0), ast.Zero),
	}
	found := UnusedLocalPass{}.Diagnose(body, FunctionMetadata{})
	assert.Empty(t, found)
}

func TestUnusedLocalAssignmentIsNotARead(t *testing.T) {
	typ := ast.Primitive(1)
	body := []ast.Expr{
		ast.NewDeclare(0, &typ, nil, ast.Zero),
		ast.NewAssign(local(0), ast.NewConstantI32(2, ast.Zero), ast.Zero),
	}
	found := UnusedLocalPass{}.Diagnose(body, FunctionMetadata{})
	assert.Len(t, found, 1)
}
