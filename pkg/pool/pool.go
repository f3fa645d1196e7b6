// Package pool defines the ConstantPool collaborator consumed by the
// Emitter (spec §6): an external string/name/resource/tweakdb-id/type/
// function/parameter table. The core only interns strings/names/resources/
// tweakdb-ids and reads metadata for everything else; the storage format
// itself is out of scope (spec §1).
package pool

import (
	"fmt"

	"github.com/psiberx/redscript/pkg/ast"
)

// LookupError is returned by any read accessor when idx does not name a
// known entry, forwarded by the emitter as a PoolLookup error (spec §7).
type LookupError struct {
	Kind string
	Idx  ast.PoolIndex
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown %s at pool index %d", e.Kind, e.Idx)
}

// FunctionFlags are the function-table flags the Call Encoder reads to
// decide static vs. virtual dispatch (spec §4.2).
type FunctionFlags struct {
	Final  bool
	Static bool
	Native bool
}

// ParameterFlags are the per-parameter flags the Call Encoder reads to
// decide whether to wrap an argument in a Skip trampoline (spec §4.2).
type ParameterFlags struct {
	ShortCircuit bool
}

// FunctionDef is the function-table entry for a Function callable.
type FunctionDef struct {
	Flags      FunctionFlags
	Parameters []ast.PoolIndex // indices into the parameter table
}

// ParameterDef is a single parameter-table entry.
type ParameterDef struct {
	Flags ParameterFlags
}

// EnumDef is an enum definition; Members lists its constants in declaration
// order (used by default initialization, §4.1.a).
type EnumDef struct {
	Members []ast.PoolIndex
}

// Definition is the generic named-entry view used to resolve NameOf (§4.3).
type Definition struct {
	Name ast.PoolIndex
}

// ConstantPool is the external constant pool the Emitter borrows mutably
// for the duration of a single function's emission (spec §5, §6).
type ConstantPool interface {
	AddString(s string) ast.PoolIndex
	AddName(s string) ast.PoolIndex
	AddResource(s string) ast.PoolIndex
	AddTweakDBID(s string) ast.PoolIndex

	Function(idx ast.PoolIndex) (FunctionDef, error)
	Parameter(idx ast.PoolIndex) (ParameterDef, error)
	Enum(idx ast.PoolIndex) (EnumDef, error)
	Definition(idx ast.PoolIndex) (Definition, error)
	DefName(idx ast.PoolIndex) (string, error)
}
