package pool

import "github.com/psiberx/redscript/pkg/ast"

// Memory is a minimal in-process ConstantPool, used by tests and by
// standalone tools embedding this module without a real compiled-module
// constant pool. Interning uses a plain map — not an LRU or any other
// bounded cache — because Invariant 4 (spec §8) requires that the index
// returned by add is stable for the lifetime of the compilation; an
// eviction-capable cache would let the same literal intern to two
// different indices.
type Memory struct {
	strings     []string
	stringIdx   map[string]ast.PoolIndex
	names       []string
	nameIdx     map[string]ast.PoolIndex
	resources   []string
	resourceIdx map[string]ast.PoolIndex
	tweakdbIDs  []string
	tweakdbIdx  map[string]ast.PoolIndex

	Functions   map[ast.PoolIndex]FunctionDef
	Parameters  map[ast.PoolIndex]ParameterDef
	Enums       map[ast.PoolIndex]EnumDef
	Definitions map[ast.PoolIndex]Definition
	DefNames    map[ast.PoolIndex]string
}

// NewMemory returns an empty in-memory pool.
func NewMemory() *Memory {
	return &Memory{
		stringIdx:   make(map[string]ast.PoolIndex),
		nameIdx:     make(map[string]ast.PoolIndex),
		resourceIdx: make(map[string]ast.PoolIndex),
		tweakdbIdx:  make(map[string]ast.PoolIndex),
		Functions:   make(map[ast.PoolIndex]FunctionDef),
		Parameters:  make(map[ast.PoolIndex]ParameterDef),
		Enums:       make(map[ast.PoolIndex]EnumDef),
		Definitions: make(map[ast.PoolIndex]Definition),
		DefNames:    make(map[ast.PoolIndex]string),
	}
}

func intern(values *[]string, idx map[string]ast.PoolIndex, s string) ast.PoolIndex {
	if i, ok := idx[s]; ok {
		return i
	}
	i := ast.PoolIndex(len(*values))
	*values = append(*values, s)
	idx[s] = i
	return i
}

func (m *Memory) AddString(s string) ast.PoolIndex     { return intern(&m.strings, m.stringIdx, s) }
func (m *Memory) AddName(s string) ast.PoolIndex        { return intern(&m.names, m.nameIdx, s) }
func (m *Memory) AddResource(s string) ast.PoolIndex    { return intern(&m.resources, m.resourceIdx, s) }
func (m *Memory) AddTweakDBID(s string) ast.PoolIndex   { return intern(&m.tweakdbIDs, m.tweakdbIdx, s) }

// Strings returns the interned strings in index order, for tests.
func (m *Memory) Strings() []string { return m.strings }

func (m *Memory) Function(idx ast.PoolIndex) (FunctionDef, error) {
	if d, ok := m.Functions[idx]; ok {
		return d, nil
	}
	return FunctionDef{}, &LookupError{Kind: "function", Idx: idx}
}

func (m *Memory) Parameter(idx ast.PoolIndex) (ParameterDef, error) {
	if d, ok := m.Parameters[idx]; ok {
		return d, nil
	}
	return ParameterDef{}, &LookupError{Kind: "parameter", Idx: idx}
}

func (m *Memory) Enum(idx ast.PoolIndex) (EnumDef, error) {
	if d, ok := m.Enums[idx]; ok {
		return d, nil
	}
	return EnumDef{}, &LookupError{Kind: "enum", Idx: idx}
}

func (m *Memory) Definition(idx ast.PoolIndex) (Definition, error) {
	if d, ok := m.Definitions[idx]; ok {
		return d, nil
	}
	return Definition{}, &LookupError{Kind: "definition", Idx: idx}
}

func (m *Memory) DefName(idx ast.PoolIndex) (string, error) {
	if n, ok := m.DefNames[idx]; ok {
		return n, nil
	}
	return "", &LookupError{Kind: "definition name", Idx: idx}
}
