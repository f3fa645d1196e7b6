package emit

import (
	"fmt"

	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/bytecode"
	"github.com/psiberx/redscript/pkg/opcode"
)

// assembleIntrinsic dispatches an intrinsic callable to its opcode (spec
// §4.3). After the intrinsic opcode is emitted (except NameOf, which
// returns early), each argument expression is emitted in order.
func (e *Emitter) assembleIntrinsic(n ast.Call) error {
	argType := func(i int) (ast.TypeID, error) {
		if i >= len(n.ArgTypes) {
			return ast.TypeID{}, fmt.Errorf("emit: missing resolved type for intrinsic argument %d", i)
		}
		return n.ArgTypes[i], nil
	}
	typeIdx := func(i int) (ast.PoolIndex, error) {
		t, err := argType(i)
		if err != nil {
			return 0, err
		}
		return e.scope.GetTypeIndex(t, e.pool)
	}
	// arrayOp picks the static- or dynamic-array opcode for array
	// intrinsics that dispatch on the argument's array kind.
	arrayOp := func(i int, dyn, static opcode.Opcode) (bytecode.Instr, error) {
		t, err := argType(i)
		if err != nil {
			return bytecode.Instr{}, err
		}
		idx, err := e.scope.GetTypeIndex(t, e.pool)
		if err != nil {
			return bytecode.Instr{}, poolLookupError(err)
		}
		op := dyn
		if t.Kind == ast.TypeStaticArray {
			op = static
		}
		return bytecode.Instr{Op: op, Int: []int64{int64(idx)}}, nil
	}

	switch n.Callable.Intrinsic {
	case ast.Equals:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		// Cross-type comparison is currently accepted; the diagnostic
		// pipeline may warn (spec §4.3, Equality; TODO upstream).
		e.emit(bytecode.Instr{Op: opcode.Equals, Int: []int64{int64(idx)}})
	case ast.NotEquals:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.NotEquals, Int: []int64{int64(idx)}})
	case ast.ArrayClear:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayClear, Int: []int64{int64(idx)}})
	case ast.ArrayResize:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayResize, Int: []int64{int64(idx)}})
	case ast.ArrayPush:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayPush, Int: []int64{int64(idx)}})
	case ast.ArrayPop:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayPop, Int: []int64{int64(idx)}})
	case ast.ArrayInsert:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayInsert, Int: []int64{int64(idx)}})
	case ast.ArrayRemove:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayRemove, Int: []int64{int64(idx)}})
	case ast.ArrayGrow:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayGrow, Int: []int64{int64(idx)}})
	case ast.ArrayErase:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayErase, Int: []int64{int64(idx)}})
	case ast.ArrayLast:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArrayLast, Int: []int64{int64(idx)}})
	case ast.ArraySort:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArraySort, Int: []int64{int64(idx)}})
	case ast.ArraySortByPredicate:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ArraySortByPredicate, Int: []int64{int64(idx)}})
	case ast.ArraySize:
		instr, err := arrayOp(0, opcode.ArraySize, opcode.StaticArraySize)
		if err != nil {
			return err
		}
		e.emit(instr)
	case ast.ArrayFindFirst:
		instr, err := arrayOp(0, opcode.ArrayFindFirst, opcode.StaticArrayFindFirst)
		if err != nil {
			return err
		}
		e.emit(instr)
	case ast.ArrayFindLast:
		instr, err := arrayOp(0, opcode.ArrayFindLast, opcode.StaticArrayFindLast)
		if err != nil {
			return err
		}
		e.emit(instr)
	case ast.ArrayContains:
		instr, err := arrayOp(0, opcode.ArrayContains, opcode.StaticArrayContains)
		if err != nil {
			return err
		}
		e.emit(instr)
	case ast.ArrayCount:
		instr, err := arrayOp(0, opcode.ArrayCount, opcode.StaticArrayCount)
		if err != nil {
			return err
		}
		e.emit(instr)
	case ast.ToString:
		t0, err := argType(0)
		if err != nil {
			return err
		}
		if t0.Kind == ast.TypeVariant {
			e.emit(bytecode.Instr{Op: opcode.VariantToString})
		} else {
			idx, err := e.scope.GetTypeIndex(t0, e.pool)
			if err != nil {
				return poolLookupError(err)
			}
			e.emit(bytecode.Instr{Op: opcode.ToString, Int: []int64{int64(idx)}})
		}
	case ast.EnumInt:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.EnumToI32, Int: []int64{int64(idx), 4}})
	case ast.IntEnum:
		idx, err := e.scope.GetTypeIndex(n.Callable.ReturnType, e.pool)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{Op: opcode.I32ToEnum, Int: []int64{int64(idx), 4}})
	case ast.ToVariant:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.ToVariant, Int: []int64{int64(idx)}})
	case ast.FromVariant:
		idx, err := e.scope.GetTypeIndex(n.Callable.ReturnType, e.pool)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{Op: opcode.FromVariant, Int: []int64{int64(idx)}})
	case ast.VariantIsRef:
		e.emit(bytecode.Instr{Op: opcode.VariantIsRef})
	case ast.VariantIsArray:
		e.emit(bytecode.Instr{Op: opcode.VariantIsArray})
	case ast.VariantTypeName:
		e.emit(bytecode.Instr{Op: opcode.VariantTypeName})
	case ast.AsRef:
		idx, err := typeIdx(0)
		if err != nil {
			return err
		}
		e.emit(bytecode.Instr{Op: opcode.AsRef, Int: []int64{int64(idx)}})
	case ast.Deref:
		idx, err := e.scope.GetTypeIndex(n.Callable.ReturnType, e.pool)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{Op: opcode.Deref, Int: []int64{int64(idx)}})
	case ast.RefToWeakRef:
		e.emit(bytecode.Instr{Op: opcode.RefToWeakRef})
	case ast.WeakRefToRef:
		e.emit(bytecode.Instr{Op: opcode.WeakRefToRef})
	case ast.IsDefined:
		t0, err := argType(0)
		if err != nil {
			return err
		}
		switch t0.Kind {
		case ast.TypeRef, ast.TypeNull:
			e.emit(bytecode.Instr{Op: opcode.RefToBool})
		case ast.TypeWeakRef:
			e.emit(bytecode.Instr{Op: opcode.WeakRefToBool})
		case ast.TypeVariant:
			e.emit(bytecode.Instr{Op: opcode.VariantIsDefined})
		default:
			return fmt.Errorf("emit: invalid IsDefined parameter type %s", typeName(t0))
		}
	case ast.NameOf:
		t0, err := argType(0)
		if err != nil {
			return err
		}
		var defIdx ast.PoolIndex
		switch t0.Kind {
		case ast.TypeEnum, ast.TypeClass, ast.TypeStruct:
			defIdx = t0.Index
		default:
			return fmt.Errorf("emit: invalid NameOf parameter type %s", typeName(t0))
		}
		def, err := e.pool.Definition(defIdx)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{Op: opcode.NameConst, Int: []int64{int64(def.Name)}})
		return nil // NameOf never emits its argument expression.
	default:
		return fmt.Errorf("emit: unhandled intrinsic %v", n.Callable.Intrinsic)
	}

	for _, arg := range n.Args {
		if err := e.assemble(arg); err != nil {
			return err
		}
	}
	return nil
}
