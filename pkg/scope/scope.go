// Package scope defines the Scope collaborator consumed by the Emitter
// (spec §6): it interns or finds the constant-pool encoding for a TypeID.
package scope

import (
	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/pool"
)

// Scope interns (or finds) the constant-pool index for a type, on demand,
// during emission.
type Scope interface {
	GetTypeIndex(typ ast.TypeID, p pool.ConstantPool) (ast.PoolIndex, error)
}

// Memory is a reference Scope that assigns each distinct TypeID a stable
// index the first time it's requested, for tests and standalone use.
type Memory struct {
	seen  map[string]ast.PoolIndex
	order []ast.TypeID
}

// NewMemory returns an empty in-memory Scope.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]ast.PoolIndex)}
}

func (s *Memory) GetTypeIndex(typ ast.TypeID, _ pool.ConstantPool) (ast.PoolIndex, error) {
	key := typeKey(typ)
	if idx, ok := s.seen[key]; ok {
		return idx, nil
	}
	idx := ast.PoolIndex(len(s.order))
	s.order = append(s.order, typ)
	s.seen[key] = idx
	return idx, nil
}

// Types returns the interned types in index order, for tests.
func (s *Memory) Types() []ast.TypeID { return s.order }

func typeKey(t ast.TypeID) string {
	switch t.Kind {
	case ast.TypeRef, ast.TypeWeakRef, ast.TypeArray, ast.TypeScriptRef:
		return string(rune(t.Kind)) + ":" + typeKey(*t.Inner)
	case ast.TypeStaticArray:
		return string(rune(t.Kind)) + ":" + typeKey(*t.Inner) + ":" + itoa(t.Size)
	case ast.TypePrimitive, ast.TypeClass, ast.TypeStruct, ast.TypeEnum:
		return string(rune(t.Kind)) + "#" + itoa(uint32(t.Index))
	default:
		return string(rune(t.Kind))
	}
}

func itoa(u uint32) string {
	if u == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}
