package emit

import (
	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/bytecode"
	"github.com/psiberx/redscript/pkg/opcode"
	"github.com/psiberx/redscript/pkg/pool"
	"github.com/psiberx/redscript/pkg/scope"
	"github.com/psiberx/redscript/pkg/sourcemap"
)

// fakeSourceMap always resolves any span to the same fixed location,
// enough for the Call Encoder's line lookup and nothing more.
type fakeSourceMap struct{}

func (fakeSourceMap) Lookup(_ ast.Span) (sourcemap.Location, bool) {
	return sourcemap.Location{
		Start: sourcemap.Position{Line: 1, Col: 0},
		End:   sourcemap.Position{Line: 1, Col: 1},
		File:  "test.reds",
		Line:  "test",
	}, true
}

func newTestPool() *pool.Memory {
	p := pool.NewMemory()
	// Primitive type names, indexed by well-known slots used across tests.
	for i, name := range []string{
		ast.PrimBool, ast.PrimInt32, ast.PrimInt64, ast.PrimString,
	} {
		p.DefNames[ast.PoolIndex(i)] = name
	}
	return p
}

const (
	boolPrimIdx   = ast.PoolIndex(0)
	int32PrimIdx  = ast.PoolIndex(1)
	int64PrimIdx  = ast.PoolIndex(2)
	stringPrimIdx = ast.PoolIndex(3)
)

func newTestScope() *scope.Memory { return scope.NewMemory() }

// ops returns the opcode sequence of code with Target pseudo-instructions
// dropped, for structural assertions that don't care about exact labels.
func ops(code bytecode.Code) []opcode.Opcode {
	var out []opcode.Opcode
	for _, instr := range code {
		if instr.IsTarget {
			continue
		}
		out = append(out, instr.Op)
	}
	return out
}
