// Package bytecode holds the labeled and resolved instruction stream that
// flows between the Emitter and the Label Resolver (spec §3, §4.4). A
// single Instr type represents both forms: in labeled form its Labels field
// carries symbolic targets and Offsets is unset; after resolution Offsets
// holds the signed byte displacement for each of those same slots, and
// Labels is kept alongside it (Resolved compares the two lengths).
package bytecode

import "github.com/psiberx/redscript/pkg/opcode"

// Label is a monotonically numbered symbolic branch target, minted by the
// Emitter and later resolved to a byte offset by the Label Resolver.
type Label uint32

// Instr is one instruction in the stream. Target is a pseudo-instruction: it
// carries no opcode and marks the location a Label resolves to; it never
// reaches a resolved Code.
type Instr struct {
	Op Opcode

	// IsTarget marks this as a Target(Label) pseudo-instruction rather than
	// a real opcode. When true, only Labels[0] is meaningful.
	IsTarget bool

	// Int holds 0-3 small/pool-index immediates, in the order the opcode
	// defines them (e.g. Construct: [argCount, structIdx]; EnumConst:
	// [enumIdx, memberIdx]; InvokeStatic/Virtual: [line, idx, flags]).
	Int []int64

	// Labels holds this instruction's branch operands, in opcode-defined
	// order, before resolution.
	Labels []Label

	// Offsets holds the resolved signed byte displacement for each entry
	// of Labels, filled in by the Label Resolver. Empty before resolution.
	Offsets []int32
}

// Opcode is a local alias so call sites can write bytecode.Instr{Op: ...}
// without importing the opcode package under a second name.
type Opcode = opcode.Opcode

// Target returns a Target(label) pseudo-instruction.
func Target(l Label) Instr {
	return Instr{IsTarget: true, Labels: []Label{l}}
}

// Size returns the instruction's encoded byte width: the opcode byte, its
// fixed-width immediates, and LabelWidth bytes per label/offset operand.
// Target pseudo-instructions have size 0 — they occupy no space in the
// resolved stream.
func (i Instr) Size() int {
	if i.IsTarget {
		return 0
	}
	return i.Op.BaseSize()
}

// Resolved reports whether every label operand of i has a corresponding
// resolved offset.
func (i Instr) Resolved() bool {
	return !i.IsTarget && len(i.Offsets) == len(i.Labels)
}

// Code is a sequence of instructions, either labeled (fresh from the
// Emitter) or resolved (after the Label Resolver has run).
type Code []Instr

// Len returns the total encoded byte length of the stream, summing each
// instruction's Size, including Target pseudo-instructions (which are 0).
func (c Code) Len() int {
	n := 0
	for _, instr := range c {
		n += instr.Size()
	}
	return n
}

// HasPseudoInstructions reports whether any Target entries remain — true
// for a freshly emitted, unresolved stream; always false after resolution
// (Invariant 4, spec §3).
func (c Code) HasPseudoInstructions() bool {
	for _, instr := range c {
		if instr.IsTarget {
			return true
		}
	}
	return false
}
