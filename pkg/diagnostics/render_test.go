package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/sourcemap"
)

type fixedSourceMap sourcemap.Location

func (f fixedSourceMap) Lookup(_ ast.Span) (sourcemap.Location, bool) {
	return sourcemap.Location(f), true
}

func TestRenderPlainDiagnosticHasNoCodePrefix(t *testing.T) {
	src := fixedSourceMap{
		Start: sourcemap.Position{Line: 3, Col: 4},
		End:   sourcemap.Position{Line: 3, Col: 9},
		File:  "foo.reds",
		Line:  "let x = bar();",
	}
	out, err := Render(Diagnostic{Kind: UnusedLocal{}, Span: ast.Zero}, src)
	require.NoError(t, err)
	assert.NotContains(t, out, "[")
	assert.Contains(t, out, "At foo.reds:3:4")
	assert.Contains(t, out, "this variable is never used")
	assert.Contains(t, out, "^^^^^")
}

func TestRenderCompileErrorHasCodePrefix(t *testing.T) {
	src := fixedSourceMap{
		Start: sourcemap.Position{Line: 1, Col: 0},
		End:   sourcemap.Position{Line: 1, Col: 1},
		File:  "foo.reds",
		Line:  "x",
	}
	d := Diagnostic{Kind: CompileError{Cause: "unresolved type", Code: "E0042"}, Span: ast.Zero}
	out, err := Render(d, src)
	require.NoError(t, err)
	assert.Contains(t, out, "[E0042] ")
	assert.Equal(t, "E0042", d.Code())
}

func TestRenderTabsBecomeSpaces(t *testing.T) {
	src := fixedSourceMap{
		Start: sourcemap.Position{Line: 1, Col: 1},
		End:   sourcemap.Position{Line: 1, Col: 2},
		File:  "foo.reds",
		Line:  "\tx",
	}
	out, err := Render(Diagnostic{Kind: UnusedLocal{}, Span: ast.Zero}, src)
	require.NoError(t, err)
	assert.NotContains(t, out, "\t")
}

func TestRenderMultilineUnderlineIsThreeCarets(t *testing.T) {
	src := fixedSourceMap{
		Start: sourcemap.Position{Line: 1, Col: 2},
		End:   sourcemap.Position{Line: 4, Col: 0},
		File:  "foo.reds",
		Line:  "if (x) {",
	}
	out, err := Render(Diagnostic{Kind: MissingReturn{}, Span: ast.Zero}, src)
	require.NoError(t, err)
	assert.Contains(t, out, "^^^")
	assert.NotContains(t, out, "^^^^")
}

func TestRenderUnknownSpanIsError(t *testing.T) {
	_, err := Render(Diagnostic{Kind: UnusedLocal{}, Span: ast.Zero}, missingSourceMap{})
	require.Error(t, err)
}

type missingSourceMap struct{}

func (missingSourceMap) Lookup(_ ast.Span) (sourcemap.Location, bool) { return sourcemap.Location{}, false }
