package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringKnownOpcodes(t *testing.T) {
	assert.Equal(t, "Nop", Nop.String())
	assert.Equal(t, "InvokeVirtual", InvokeVirtual.String())
	assert.Equal(t, "WeakRefToBool", WeakRefToBool.String())
}

func TestStringUnknownOpcode(t *testing.T) {
	assert.Equal(t, "Opcode(?)", opcodeCount.String())
	assert.Equal(t, "Opcode(?)", Opcode(255).String())
}

func TestIsValid(t *testing.T) {
	assert.True(t, Nop.IsValid())
	assert.True(t, WeakRefToBool.IsValid())
	assert.False(t, opcodeCount.IsValid())
	assert.False(t, Opcode(255).IsValid())
}

func TestBaseSizeFixedWidth(t *testing.T) {
	require.Equal(t, 1, Nop.BaseSize())
	require.Equal(t, 1+1, I8Const.BaseSize())
	require.Equal(t, 1+4, I32Const.BaseSize())
	require.Equal(t, 1+8, I64Const.BaseSize())
}

func TestBaseSizeWithLabels(t *testing.T) {
	// Jump: opcode byte + 1 label operand.
	assert.Equal(t, 1+LabelWidth, Jump.BaseSize())
	// SwitchLabel: opcode byte, no fixed operand, 2 labels.
	assert.Equal(t, 1+2*LabelWidth, SwitchLabel.BaseSize())
	// Conditional: opcode byte, no fixed operand, 2 labels.
	assert.Equal(t, 1+2*LabelWidth, Conditional.BaseSize())
	// InvokeStatic: opcode byte + 8 bytes fixed + 1 label.
	assert.Equal(t, 1+8+LabelWidth, InvokeStatic.BaseSize())
}

func TestLabelCount(t *testing.T) {
	assert.Equal(t, 0, Nop.LabelCount())
	assert.Equal(t, 1, Jump.LabelCount())
	assert.Equal(t, 2, SwitchLabel.LabelCount())
	assert.Equal(t, 0, opcodeCount.LabelCount())
}

func TestBaseSizeInvalidOpcode(t *testing.T) {
	assert.Equal(t, 1, Opcode(255).BaseSize())
}
