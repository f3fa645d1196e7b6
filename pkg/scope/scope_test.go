package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psiberx/redscript/pkg/ast"
)

func TestGetTypeIndexDedupes(t *testing.T) {
	s := NewMemory()
	a, err := s.GetTypeIndex(ast.Primitive(3), nil)
	require.NoError(t, err)
	b, err := s.GetTypeIndex(ast.Primitive(3), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGetTypeIndexDistinguishesKinds(t *testing.T) {
	s := NewMemory()
	class, _ := s.GetTypeIndex(ast.Class(1), nil)
	strukt, _ := s.GetTypeIndex(ast.Struct(1), nil)
	assert.NotEqual(t, class, strukt)
}

func TestGetTypeIndexNestedTypes(t *testing.T) {
	s := NewMemory()
	ref, _ := s.GetTypeIndex(ast.Ref(ast.Class(5)), nil)
	wref, _ := s.GetTypeIndex(ast.WeakRef(ast.Class(5)), nil)
	assert.NotEqual(t, ref, wref)

	refAgain, _ := s.GetTypeIndex(ast.Ref(ast.Class(5)), nil)
	assert.Equal(t, ref, refAgain)
}

func TestGetTypeIndexStaticArrayDistinguishesSize(t *testing.T) {
	s := NewMemory()
	a, _ := s.GetTypeIndex(ast.StaticArray(ast.Primitive(0), 4), nil)
	b, _ := s.GetTypeIndex(ast.StaticArray(ast.Primitive(0), 8), nil)
	assert.NotEqual(t, a, b)
}
