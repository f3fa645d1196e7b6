package ast

// ValueKind distinguishes a local slot from a parameter slot for a Value
// reference.
type ValueKind byte

const (
	ValueLocal ValueKind = iota
	ValueParam
)

// SymbolKind distinguishes the kinds of non-value symbols a Reference may
// name (spec §3, "Reference").
type SymbolKind byte

const (
	SymbolClass SymbolKind = iota
	SymbolStruct
	SymbolEnum
	SymbolOther
)

// Reference is either a Value (a local or parameter slot) or a Symbol
// (class/struct/enum/etc., valid only as the receiver of a static method
// call). IsValue reports which.
type Reference struct {
	IsValue bool

	// Value fields.
	ValueKind ValueKind
	Slot      uint16

	// Symbol fields.
	SymbolKind SymbolKind
	Symbol     PoolIndex
}

func ValueRef(kind ValueKind, slot uint16) Reference {
	return Reference{IsValue: true, ValueKind: kind, Slot: slot}
}

func SymbolRef(kind SymbolKind, idx PoolIndex) Reference {
	return Reference{IsValue: false, SymbolKind: kind, Symbol: idx}
}

// Intrinsic enumerates the primitive operations the Call Encoder's sibling,
// the intrinsics dispatcher (§4.3), recognizes.
type Intrinsic byte

const (
	Equals Intrinsic = iota
	NotEquals
	ArrayClear
	ArrayResize
	ArrayPush
	ArrayPop
	ArrayInsert
	ArrayRemove
	ArrayGrow
	ArrayErase
	ArrayLast
	ArraySort
	ArraySortByPredicate
	ArraySize
	ArrayFindFirst
	ArrayFindLast
	ArrayContains
	ArrayCount
	ToString
	EnumInt
	IntEnum
	ToVariant
	FromVariant
	VariantIsRef
	VariantIsArray
	VariantTypeName
	AsRef
	Deref
	RefToWeakRef
	WeakRefToRef
	IsDefined
	NameOf
)

// Callable is either a Function (constant-pool index into the function
// table) or an Intrinsic (an enumerated primitive operation plus its return
// type), per spec §3.
type Callable struct {
	IsIntrinsic bool

	Function PoolIndex // valid when !IsIntrinsic

	Intrinsic  Intrinsic // valid when IsIntrinsic
	ReturnType TypeID    // valid when IsIntrinsic
}

func FunctionCallable(idx PoolIndex) Callable {
	return Callable{IsIntrinsic: false, Function: idx}
}

func IntrinsicCallable(op Intrinsic, ret TypeID) Callable {
	return Callable{IsIntrinsic: true, Intrinsic: op, ReturnType: ret}
}

// MemberKind tags which shape a Member carries (spec §4.1, "Member").
type MemberKind byte

const (
	MemberClassField MemberKind = iota
	MemberStructField
	MemberEnumMember
)

// MemberRef is a resolved field or enum-constant access reached through a
// Member expression's receiver.
type MemberRef struct {
	Kind MemberKind

	Field PoolIndex // valid for MemberClassField, MemberStructField

	Enum       PoolIndex // valid for MemberEnumMember
	EnumMember PoolIndex // valid for MemberEnumMember
}
