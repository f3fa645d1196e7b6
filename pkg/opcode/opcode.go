// Package opcode defines the instruction set of the target bytecode virtual
// machine that the codegen core emits for. The VM's binary instruction
// layout is, per the core's contract, owned by an external module; this
// package plays that role only to the extent the core needs it: each
// [Opcode] knows its own encoded size so the label resolver can compute
// byte offsets without ever producing the actual byte stream.
package opcode

// Opcode identifies a single VM instruction.
type Opcode byte

const (
	Nop Opcode = iota

	// Constants.
	TrueConst
	FalseConst
	I8Const
	I16Const
	I32Const
	I64Const
	U8Const
	U16Const
	U32Const
	U64Const
	I32Zero
	F32Const
	F64Const
	StringConst
	NameConst
	ResourceConst
	TweakDBIdConst
	Null
	This
	EnumConst

	// Locals and parameters.
	Local
	Param
	Assign

	// Casts, arrays, construction.
	DynamicCast
	ArrayElement
	StaticArrayElement
	New
	Construct
	Return

	// Control flow.
	Switch
	SwitchLabel
	SwitchDefault
	Jump
	JumpIfFalse
	Conditional

	// Member access.
	Context
	ObjectField
	StructField

	// Calls.
	InvokeStatic
	InvokeVirtual
	ParamEnd
	Skip

	// Equality.
	Equals
	NotEquals

	// Array mutation.
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

	// Array queries (dynamic).
	ArraySize
	ArrayFindFirst
	ArrayFindLast
	ArrayContains
	ArrayCount

	// Array queries (static).
	StaticArraySize
	StaticArrayFindFirst
	StaticArrayFindLast
	StaticArrayContains
	StaticArrayCount

	// Conversions.
	ToString
	VariantToString
	EnumToI32
	I32ToEnum
	ToVariant
	FromVariant

	// Variant introspection.
	VariantIsRef
	VariantIsArray
	VariantTypeName
	VariantIsDefined

	// References.
	AsRef
	Deref
	RefToWeakRef
	WeakRefToRef
	WeakRefNull
	RefToBool
	WeakRefToBool

	opcodeCount
)

var names = [opcodeCount]string{
	Nop:                  "Nop",
	TrueConst:            "TrueConst",
	FalseConst:           "FalseConst",
	I8Const:              "I8Const",
	I16Const:             "I16Const",
	I32Const:             "I32Const",
	I64Const:             "I64Const",
	U8Const:              "U8Const",
	U16Const:             "U16Const",
	U32Const:             "U32Const",
	U64Const:             "U64Const",
	I32Zero:              "I32Zero",
	F32Const:             "F32Const",
	F64Const:             "F64Const",
	StringConst:          "StringConst",
	NameConst:            "NameConst",
	ResourceConst:        "ResourceConst",
	TweakDBIdConst:       "TweakDBIdConst",
	Null:                 "Null",
	This:                 "This",
	EnumConst:            "EnumConst",
	Local:                "Local",
	Param:                "Param",
	Assign:               "Assign",
	DynamicCast:          "DynamicCast",
	ArrayElement:         "ArrayElement",
	StaticArrayElement:   "StaticArrayElement",
	New:                  "New",
	Construct:            "Construct",
	Return:               "Return",
	Switch:               "Switch",
	SwitchLabel:          "SwitchLabel",
	SwitchDefault:        "SwitchDefault",
	Jump:                 "Jump",
	JumpIfFalse:          "JumpIfFalse",
	Conditional:          "Conditional",
	Context:              "Context",
	ObjectField:          "ObjectField",
	StructField:          "StructField",
	InvokeStatic:         "InvokeStatic",
	InvokeVirtual:        "InvokeVirtual",
	ParamEnd:             "ParamEnd",
	Skip:                 "Skip",
	Equals:               "Equals",
	NotEquals:            "NotEquals",
	ArrayClear:           "ArrayClear",
	ArrayResize:          "ArrayResize",
	ArrayPush:            "ArrayPush",
	ArrayPop:             "ArrayPop",
	ArrayInsert:          "ArrayInsert",
	ArrayRemove:          "ArrayRemove",
	ArrayGrow:            "ArrayGrow",
	ArrayErase:           "ArrayErase",
	ArrayLast:            "ArrayLast",
	ArraySort:            "ArraySort",
	ArraySortByPredicate: "ArraySortByPredicate",
	ArraySize:            "ArraySize",
	ArrayFindFirst:       "ArrayFindFirst",
	ArrayFindLast:        "ArrayFindLast",
	ArrayContains:        "ArrayContains",
	ArrayCount:           "ArrayCount",
	StaticArraySize:      "StaticArraySize",
	StaticArrayFindFirst: "StaticArrayFindFirst",
	StaticArrayFindLast:  "StaticArrayFindLast",
	StaticArrayContains:  "StaticArrayContains",
	StaticArrayCount:     "StaticArrayCount",
	ToString:             "ToString",
	VariantToString:      "VariantToString",
	EnumToI32:            "EnumToI32",
	I32ToEnum:            "I32ToEnum",
	ToVariant:            "ToVariant",
	FromVariant:          "FromVariant",
	VariantIsRef:         "VariantIsRef",
	VariantIsArray:       "VariantIsArray",
	VariantTypeName:      "VariantTypeName",
	VariantIsDefined:     "VariantIsDefined",
	AsRef:                "AsRef",
	Deref:                "Deref",
	RefToWeakRef:         "RefToWeakRef",
	WeakRefToRef:         "WeakRefToRef",
	WeakRefNull:          "WeakRefNull",
	RefToBool:            "RefToBool",
	WeakRefToBool:        "WeakRefToBool",
}

func (op Opcode) String() string {
	if op < opcodeCount {
		if n := names[op]; n != "" {
			return n
		}
	}
	return "Opcode(?)"
}

// IsValid reports whether op is a recognized opcode.
func (op Opcode) IsValid() bool {
	return op < opcodeCount
}

// operandSize is the fixed width, in bytes, of an opcode's operands,
// excluding the opcode byte itself and excluding any label operands (those
// are sized separately, see LabelWidth).
var operandSize = [opcodeCount]int{
	I8Const:              1,
	I16Const:             2,
	I32Const:             4,
	I64Const:             8,
	U8Const:              1,
	U16Const:             2,
	U32Const:             4,
	U64Const:             8,
	F32Const:             4,
	F64Const:             8,
	StringConst:          2,
	NameConst:            2,
	ResourceConst:        2,
	TweakDBIdConst:       2,
	EnumConst:            4,
	Local:                2,
	Param:                2,
	DynamicCast:          3,
	ArrayElement:         2,
	StaticArrayElement:   2,
	New:                  2,
	Construct:            3,
	Switch:               2, // + 1 label
	SwitchLabel:          0, // 2 labels
	Context:              0, // 1 label
	ObjectField:          2,
	StructField:          2,
	InvokeStatic:         8, // + 1 label (line u32, idx u16, flags u16)
	InvokeVirtual:        8, // + 1 label
	Equals:               2,
	NotEquals:            2,
	ArrayClear:           2,
	ArrayResize:          2,
	ArrayPush:            2,
	ArrayPop:             2,
	ArrayInsert:          2,
	ArrayRemove:          2,
	ArrayGrow:            2,
	ArrayErase:           2,
	ArrayLast:            2,
	ArraySort:            2,
	ArraySortByPredicate: 2,
	ArraySize:            2,
	ArrayFindFirst:       2,
	ArrayFindLast:        2,
	ArrayContains:        2,
	ArrayCount:           2,
	StaticArraySize:      2,
	StaticArrayFindFirst: 2,
	StaticArrayFindLast:  2,
	StaticArrayContains:  2,
	StaticArrayCount:     2,
	ToString:             2,
	EnumToI32:            3,
	I32ToEnum:            3,
	ToVariant:            2,
	FromVariant:          2,
	AsRef:                2,
	Deref:                2,
}

// LabelWidth is the fixed encoded width, in bytes, of a single label/offset
// operand once resolved. All branch-bearing opcodes use the same width.
const LabelWidth = 2

// labelCount is how many label operands op carries.
var labelCount = [opcodeCount]int{
	Switch:        1,
	SwitchLabel:   2,
	Jump:          1,
	JumpIfFalse:   1,
	Conditional:   2,
	Context:       1,
	InvokeStatic:  1,
	InvokeVirtual: 1,
	Skip:          1,
}

// LabelCount returns how many label operands op carries (0, 1, or 2).
func (op Opcode) LabelCount() int {
	if !op.IsValid() {
		return 0
	}
	return labelCount[op]
}

// BaseSize returns the encoded size, in bytes, of op's fixed-width operands
// plus the opcode byte itself, including space for its label operands (each
// LabelWidth bytes) once resolved to offsets.
func (op Opcode) BaseSize() int {
	if !op.IsValid() {
		return 1
	}
	return 1 + operandSize[op] + op.LabelCount()*LabelWidth
}
