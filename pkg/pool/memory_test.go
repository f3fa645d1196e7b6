package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psiberx/redscript/pkg/ast"
)

func TestAddStringInterns(t *testing.T) {
	m := NewMemory()
	a := m.AddString("hello")
	b := m.AddString("world")
	c := m.AddString("hello")

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, []string{"hello", "world"}, m.Strings())
}

func TestAddStringIndexStableAcrossKinds(t *testing.T) {
	m := NewMemory()
	s := m.AddString("foo")
	n := m.AddName("foo")
	// Separate tables: the same text in two different kinds must not
	// collide or share an index space.
	assert.Equal(t, ast.PoolIndex(0), s)
	assert.Equal(t, ast.PoolIndex(0), n)
}

func TestFunctionLookupMiss(t *testing.T) {
	m := NewMemory()
	_, err := m.Function(42)
	require.Error(t, err)
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "function", lookupErr.Kind)
}

func TestFunctionLookupHit(t *testing.T) {
	m := NewMemory()
	m.Functions[7] = FunctionDef{Flags: FunctionFlags{Final: true}}
	def, err := m.Function(7)
	require.NoError(t, err)
	assert.True(t, def.Flags.Final)
}

func TestDefNameLookup(t *testing.T) {
	m := NewMemory()
	m.DefNames[1] = "Int32"
	name, err := m.DefName(1)
	require.NoError(t, err)
	assert.Equal(t, "Int32", name)

	_, err = m.DefName(2)
	assert.Error(t, err)
}
