package emit

import (
	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/bytecode"
	"github.com/psiberx/redscript/pkg/opcode"
)

// assembleDeclare handles a local declaration, with or without an
// initializer (spec §4.1, "Declare").
func (e *Emitter) assembleDeclare(n ast.Declare) error {
	if n.Init != nil {
		e.emit(bytecode.Instr{Op: opcode.Assign})
		e.emit(bytecode.Instr{Op: opcode.Local, Int: []int64{int64(n.Local)}})
		return e.assemble(n.Init)
	}
	return e.emitInitializer(n.Local, *n.Type)
}

// emitInitializer synthesizes a zero value appropriate to typ (spec
// §4.1.a, "Default Initialization").
func (e *Emitter) emitInitializer(local uint16, typ ast.TypeID) error {
	switch typ.Kind {
	case ast.TypeArray:
		idx, err := e.scope.GetTypeIndex(typ, e.pool)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayClear, Int: []int64{int64(idx)}})
		e.emit(bytecode.Instr{Op: opcode.Local, Int: []int64{int64(local)}})
		return nil
	case ast.TypeStaticArray:
		// Initializing a static array from another array is explicitly
		// rejected: for an Array/StaticArray element type zeroInstr
		// returns an UnsupportedFeatureError rather than an initializer.
		instr, ok, err := e.zeroInstr(*typ.Inner)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		idx, err := e.scope.GetTypeIndex(typ, e.pool)
		if err != nil {
			return poolLookupError(err)
		}
		for i := uint32(0); i < typ.Size; i++ {
			e.emit(bytecode.Instr{Op: opcode.Assign})
			e.emit(bytecode.Instr{Op: opcode.StaticArrayElement, Int: []int64{int64(idx)}})
			e.emit(bytecode.Instr{Op: opcode.Local, Int: []int64{int64(local)}})
			e.emit(bytecode.Instr{Op: opcode.U32Const, Int: []int64{int64(i)}})
			e.emit(instr)
		}
		return nil
	default:
		instr, ok, err := e.zeroInstr(typ)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		e.emit(bytecode.Instr{Op: opcode.Assign})
		e.emit(bytecode.Instr{Op: opcode.Local, Int: []int64{int64(local)}})
		e.emit(instr)
		return nil
	}
}

// zeroInstr returns the single zero-value instruction for typ, per the
// table in spec §4.1.a. ok is false when the type has no explicit
// initializer — the VM's implicit default applies (e.g. an enum with no
// members, or a Class or Variant). Array and StaticArray are handled by the caller and
// never reach here directly, except as the element type of a StaticArray.
func (e *Emitter) zeroInstr(typ ast.TypeID) (bytecode.Instr, bool, error) {
	switch typ.Kind {
	case ast.TypePrimitive:
		name, err := e.pool.DefName(typ.Index)
		if err != nil {
			return bytecode.Instr{}, false, poolLookupError(err)
		}
		switch name {
		case ast.PrimBool:
			return bytecode.Instr{Op: opcode.FalseConst}, true, nil
		case ast.PrimInt8:
			return bytecode.Instr{Op: opcode.I8Const, Int: []int64{0}}, true, nil
		case ast.PrimInt16:
			return bytecode.Instr{Op: opcode.I16Const, Int: []int64{0}}, true, nil
		case ast.PrimInt32:
			return bytecode.Instr{Op: opcode.I32Zero}, true, nil
		case ast.PrimInt64:
			return bytecode.Instr{Op: opcode.I64Const, Int: []int64{0}}, true, nil
		case ast.PrimUint8:
			return bytecode.Instr{Op: opcode.U8Const, Int: []int64{0}}, true, nil
		case ast.PrimUint16:
			return bytecode.Instr{Op: opcode.U16Const, Int: []int64{0}}, true, nil
		case ast.PrimUint32:
			return bytecode.Instr{Op: opcode.U32Const, Int: []int64{0}}, true, nil
		case ast.PrimUint64:
			return bytecode.Instr{Op: opcode.U64Const, Int: []int64{0}}, true, nil
		case ast.PrimFloat:
			return bytecode.Instr{Op: opcode.F32Const, Int: []int64{0}}, true, nil
		case ast.PrimDouble:
			return bytecode.Instr{Op: opcode.F64Const, Int: []int64{0}}, true, nil
		case ast.PrimString:
			idx := e.pool.AddString("")
			return bytecode.Instr{Op: opcode.StringConst, Int: []int64{int64(idx)}}, true, nil
		case ast.PrimCName:
			return bytecode.Instr{Op: opcode.NameConst, Int: []int64{int64(ast.UndefinedIndex)}}, true, nil
		case ast.PrimTweakDBID:
			return bytecode.Instr{Op: opcode.TweakDBIdConst, Int: []int64{int64(ast.UndefinedIndex)}}, true, nil
		case ast.PrimResourceID:
			return bytecode.Instr{Op: opcode.ResourceConst, Int: []int64{int64(ast.UndefinedIndex)}}, true, nil
		default:
			return bytecode.Instr{}, false, nil
		}
	case ast.TypeStruct:
		return bytecode.Instr{Op: opcode.Construct, Int: []int64{0, int64(typ.Index)}}, true, nil
	case ast.TypeEnum:
		def, err := e.pool.Enum(typ.Index)
		if err != nil {
			return bytecode.Instr{}, false, poolLookupError(err)
		}
		if len(def.Members) == 0 {
			return bytecode.Instr{}, false, nil
		}
		return bytecode.Instr{Op: opcode.EnumConst, Int: []int64{int64(typ.Index), int64(def.Members[0])}}, true, nil
	case ast.TypeRef:
		return bytecode.Instr{Op: opcode.Null}, true, nil
	case ast.TypeWeakRef:
		return bytecode.Instr{Op: opcode.WeakRefNull}, true, nil
	case ast.TypeArray, ast.TypeStaticArray:
		return bytecode.Instr{}, false, &UnsupportedFeatureError{
			Feature: "initializing a static array with another array",
		}
	default:
		return bytecode.Instr{}, false, nil
	}
}
