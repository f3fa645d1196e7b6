package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/psiberx/redscript/pkg/ast"
)

func TestPipelineRunAggregatesAllPasses(t *testing.T) {
	typ := ast.Primitive(1)
	body := []ast.Expr{
		ast.NewDeclare(0, &typ, ast.NewConstantI32(1, ast.Zero), ast.Zero), // unused local
	}
	p := NewPipeline(NewDefaultPasses(), Options{})
	found := p.Run(body, FunctionMetadata{ReturnsValue: true})

	// Expect both UnusedLocal and MissingReturn from the same body.
	var kinds []Kind
	for _, d := range found {
		kinds = append(kinds, d.Kind)
	}
	assert.Contains(t, kinds, UnusedLocal{})
	assert.Contains(t, kinds, MissingReturn{})
}

func TestPipelineRunLogsBySeverity(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	typ := ast.Primitive(1)
	body := []ast.Expr{ast.NewDeclare(0, &typ, ast.NewConstantI32(1, ast.Zero), ast.Zero)}
	p := NewPipeline([]Pass{UnusedLocalPass{}}, Options{Logger: logger})
	found := p.Run(body, FunctionMetadata{})
	require.Len(t, found, 1)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestPipelineRunTagsEachCallWithAFreshRunID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	typ := ast.Primitive(1)
	body := []ast.Expr{ast.NewDeclare(0, &typ, ast.NewConstantI32(1, ast.Zero), ast.Zero)}
	p := NewPipeline([]Pass{UnusedLocalPass{}}, Options{Logger: logger})
	p.Run(body, FunctionMetadata{})
	p.Run(body, FunctionMetadata{})

	entries := logs.All()
	require.Len(t, entries, 2)
	id1, ok1 := entries[0].ContextMap()["run_id"]
	id2, ok2 := entries[1].ContextMap()["run_id"]
	require.True(t, ok1)
	require.True(t, ok2)
	assert.NotEqual(t, id1, id2)
}

func TestPipelineRunFatalDiagnosticLogsAtError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	cases := []ast.Case{
		{Matcher: ast.NewConstantI32(1, ast.Zero), Body: ast.NewSequence([]ast.Expr{ast.NewConstantI32(1, ast.Zero)}, ast.Zero)},
	}
	body := []ast.Expr{ast.NewSwitch(ast.NewThis(ast.Zero), ast.Primitive(1), cases, nil, ast.Zero)}
	p := NewPipeline([]Pass{StatementFallthroughPass{}}, Options{Logger: logger})
	found := p.Run(body, FunctionMetadata{})
	require.Len(t, found, 1)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}
