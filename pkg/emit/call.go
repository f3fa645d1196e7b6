package emit

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/bytecode"
	"github.com/psiberx/redscript/pkg/opcode"
	"github.com/psiberx/redscript/pkg/pool"
)

// callCacheEntry is what callCache memoizes per function-pool index.
type callCacheEntry struct {
	fn     pool.FunctionDef
	params []pool.ParameterFlags
}

// callCache memoizes function/parameter-flag lookups for the duration of
// one emission. A hot call site inside a loop body re-resolves the same
// function repeatedly; a cache miss just re-reads the pool (the source of
// truth), so LRU eviction cannot affect correctness — unlike the
// string/name/resource/tweakdb-id interning tables, which must never
// forget an assigned index (spec §8, Invariant 4; see pkg/pool/memory.go).
type callCache struct {
	cache *lru.Cache
}

func newCallCache() *callCache {
	c, err := lru.New(256)
	if err != nil {
		// Only invalid (non-positive) sizes cause New to fail; 256 is
		// always valid.
		panic(err)
	}
	return &callCache{cache: c}
}

func (cc *callCache) lookup(p pool.ConstantPool, idx ast.PoolIndex) (callCacheEntry, error) {
	if v, ok := cc.cache.Get(idx); ok {
		return v.(callCacheEntry), nil
	}
	fn, err := p.Function(idx)
	if err != nil {
		return callCacheEntry{}, err
	}
	params := make([]pool.ParameterFlags, len(fn.Parameters))
	for i, paramIdx := range fn.Parameters {
		pd, err := p.Parameter(paramIdx)
		if err != nil {
			return callCacheEntry{}, err
		}
		params[i] = pd.Flags
	}
	entry := callCacheEntry{fn: fn, params: params}
	cc.cache.Add(idx, entry)
	return entry, nil
}

// assembleCall is the Call Encoder (spec §4.2). forceStatic is true for
// super receivers and for explicit type-qualified (static) calls.
func (e *Emitter) assembleCall(functionIdx ast.PoolIndex, args []ast.Expr, argTypes []ast.TypeID, forceStatic bool, span ast.Span) error {
	entry, err := e.callCache.lookup(e.pool, functionIdx)
	if err != nil {
		return poolLookupError(err)
	}
	if len(args) > len(entry.params) {
		return &SignatureMismatchError{Span: span}
	}

	var invokeFlags uint16
	for n, arg := range args {
		if n >= 16 {
			break
		}
		var argType ast.TypeID
		if n < len(argTypes) {
			argType = argTypes[n]
		}
		if isRvalueRef(arg, argType) {
			invokeFlags |= 1 << uint(n)
		}
	}

	line := int64(0)
	if e.src != nil {
		if loc, ok := e.src.Lookup(span); ok {
			line = int64(loc.Start.Line)
		}
	}

	exitLabel := e.newLabel()
	if !forceStatic && !entry.fn.Flags.Final && !entry.fn.Flags.Static && !entry.fn.Flags.Native {
		def, err := e.pool.Definition(functionIdx)
		if err != nil {
			return poolLookupError(err)
		}
		e.emit(bytecode.Instr{
			Op:     opcode.InvokeVirtual,
			Int:    []int64{line, int64(def.Name), int64(invokeFlags)},
			Labels: []bytecode.Label{exitLabel},
		})
	} else {
		e.emit(bytecode.Instr{
			Op:     opcode.InvokeStatic,
			Int:    []int64{line, int64(functionIdx), int64(invokeFlags)},
			Labels: []bytecode.Label{exitLabel},
		})
	}

	for i, arg := range args {
		if entry.params[i].ShortCircuit {
			skipLabel := e.newLabel()
			e.emit(bytecode.Instr{Op: opcode.Skip, Labels: []bytecode.Label{skipLabel}})
			if err := e.assemble(arg); err != nil {
				return err
			}
			e.emitTarget(skipLabel)
		} else if err := e.assemble(arg); err != nil {
			return err
		}
	}
	for range entry.params[len(args):] {
		e.emit(bytecode.Instr{Op: opcode.Nop})
	}
	e.emit(bytecode.Instr{Op: opcode.ParamEnd})
	e.emitTarget(exitLabel)
	return nil
}

// isRvalueRef reports whether arg is an rvalue reference to a ScriptRef<T>
// (spec §4.2, step 2): any expression whose resolved static type, argType,
// is ScriptRef<T>, except a direct AsRef(x) call where x is already an
// l-value — that call produces a genuine, non-dangling reference rather
// than one into a temporary. Any other ScriptRef-typed expression (a
// forwarded parameter, a field, another call's result) counts, exactly
// like the original's is_rvalue_ref: it keys off the argument's static
// type first and only special-cases the literal AsRef(...) shape.
func isRvalueRef(arg ast.Expr, argType ast.TypeID) bool {
	if argType.Kind != ast.TypeScriptRef {
		return false
	}
	call, ok := arg.(ast.Call)
	if !ok || !call.Callable.IsIntrinsic || call.Callable.Intrinsic != ast.AsRef {
		return true
	}
	if len(call.Args) == 0 {
		return true
	}
	return !isLvalue(call.Args[0])
}

// isLvalue reports whether expr denotes a storage location (a local, a
// parameter, a field, or an array element) rather than a temporary.
func isLvalue(expr ast.Expr) bool {
	switch n := expr.(type) {
	case ast.Identifier:
		return n.Ref.IsValue
	case ast.Member:
		return true
	case ast.ArrayElem:
		return true
	default:
		return false
	}
}
