package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psiberx/redscript/pkg/opcode"
)

func TestTargetIsZeroSized(t *testing.T) {
	target := Target(3)
	assert.True(t, target.IsTarget)
	assert.Equal(t, 0, target.Size())
	assert.False(t, target.Resolved())
}

func TestInstrSize(t *testing.T) {
	i := Instr{Op: opcode.I32Const}
	assert.Equal(t, 5, i.Size()) // 1 opcode byte + 4 bytes immediate
}

func TestResolved(t *testing.T) {
	unresolved := Instr{Op: opcode.Jump, Labels: []Label{0}}
	assert.False(t, unresolved.Resolved())

	resolved := unresolved
	resolved.Offsets = []int32{12}
	assert.True(t, resolved.Resolved())
}

func TestCodeLenSkipsTargets(t *testing.T) {
	code := Code{
		Instr{Op: opcode.Nop},
		Target(0),
		Instr{Op: opcode.I32Const},
	}
	assert.Equal(t, 1+5, code.Len())
}

func TestHasPseudoInstructions(t *testing.T) {
	withTarget := Code{Target(0), Instr{Op: opcode.Nop}}
	assert.True(t, withTarget.HasPseudoInstructions())

	resolved := Code{Instr{Op: opcode.Nop}}
	assert.False(t, resolved.HasPseudoInstructions())
}
