package ast

// PoolIndex is an untyped constant-pool index. It does not record which
// table it indexes; the field or parameter holding it says that, so the
// pool package needs no knowledge of the ast package.
type PoolIndex uint32

// UndefinedIndex is the pool's sentinel for "no value interned" (used for
// the name/tweakdb-id/resource defaults of an uninitialized local, §4.1.a).
const UndefinedIndex PoolIndex = ^PoolIndex(0)

// TypeKind tags which shape a TypeID carries.
type TypeKind byte

const (
	TypePrimitive TypeKind = iota
	TypeClass
	TypeStruct
	TypeEnum
	TypeRef
	TypeWeakRef
	TypeArray
	TypeStaticArray
	TypeScriptRef
	TypeVariant
	TypeNull
)

// TypeID identifies a type in the source language's type system (spec §3,
// "Type Identity"). Primitive/Class/Struct/Enum carry a constant-pool
// index; Ref/WeakRef/Array/ScriptRef carry an inner TypeID; StaticArray
// additionally carries its fixed size.
type TypeID struct {
	Kind  TypeKind
	Index PoolIndex // valid for Primitive, Class, Struct, Enum
	Inner *TypeID   // valid for Ref, WeakRef, Array, StaticArray, ScriptRef
	Size  uint32    // valid for StaticArray
}

func Primitive(idx PoolIndex) TypeID { return TypeID{Kind: TypePrimitive, Index: idx} }
func Class(idx PoolIndex) TypeID     { return TypeID{Kind: TypeClass, Index: idx} }
func Struct(idx PoolIndex) TypeID    { return TypeID{Kind: TypeStruct, Index: idx} }
func Enum(idx PoolIndex) TypeID      { return TypeID{Kind: TypeEnum, Index: idx} }
func Ref(inner TypeID) TypeID        { return TypeID{Kind: TypeRef, Inner: &inner} }
func WeakRef(inner TypeID) TypeID    { return TypeID{Kind: TypeWeakRef, Inner: &inner} }
func Array(elem TypeID) TypeID       { return TypeID{Kind: TypeArray, Inner: &elem} }
func ScriptRef(inner TypeID) TypeID  { return TypeID{Kind: TypeScriptRef, Inner: &inner} }

func StaticArray(elem TypeID, size uint32) TypeID {
	return TypeID{Kind: TypeStaticArray, Inner: &elem, Size: size}
}

var (
	Variant  = TypeID{Kind: TypeVariant}
	NullType = TypeID{Kind: TypeNull}
)

// PrimitiveName identifiers for the well-known primitive kinds (spec §3).
// These are the names pkg/emit's zeroInstr (§4.1.a) switches on, once
// resolved via the pool's definition name for a Primitive's index.
const (
	PrimBool       = "Bool"
	PrimInt8       = "Int8"
	PrimInt16      = "Int16"
	PrimInt32      = "Int32"
	PrimInt64      = "Int64"
	PrimUint8      = "Uint8"
	PrimUint16     = "Uint16"
	PrimUint32     = "Uint32"
	PrimUint64     = "Uint64"
	PrimFloat      = "Float"
	PrimDouble     = "Double"
	PrimString     = "String"
	PrimCName      = "CName"
	PrimTweakDBID  = "TweakDBID"
	PrimResourceID = "ResRef"
)
