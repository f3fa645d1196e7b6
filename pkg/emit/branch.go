package emit

import (
	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/bytecode"
	"github.com/psiberx/redscript/pkg/opcode"
)

// assembleIf lowers an if/else (spec §4.1.c).
func (e *Emitter) assembleIf(n ast.If) error {
	elseLabel := e.newLabel()
	e.emit(bytecode.Instr{Op: opcode.JumpIfFalse, Labels: []bytecode.Label{elseLabel}})
	if err := e.assemble(n.Cond); err != nil {
		return err
	}
	if err := e.assembleSeq(n.Then); err != nil {
		return err
	}
	if n.Else != nil {
		exitLabel := e.newLabel()
		e.emit(bytecode.Instr{Op: opcode.Jump, Labels: []bytecode.Label{exitLabel}})
		e.emitTarget(elseLabel)
		if err := e.assembleSeq(*n.Else); err != nil {
			return err
		}
		e.emitTarget(exitLabel)
		return nil
	}
	e.emitTarget(elseLabel)
	return nil
}

// assembleConditional lowers a ternary expression (spec §4.1.c).
func (e *Emitter) assembleConditional(n ast.Conditional) error {
	falseLabel := e.newLabel()
	exitLabel := e.newLabel()
	e.emit(bytecode.Instr{Op: opcode.Conditional, Labels: []bytecode.Label{falseLabel, exitLabel}})
	if err := e.assemble(n.Cond); err != nil {
		return err
	}
	if err := e.assemble(n.True); err != nil {
		return err
	}
	e.emitTarget(falseLabel)
	if err := e.assemble(n.False); err != nil {
		return err
	}
	e.emitTarget(exitLabel)
	return nil
}

// assembleWhile lowers a pre-tested loop (spec §4.1.c).
func (e *Emitter) assembleWhile(n ast.While) error {
	loopLabel := e.newLabel()
	exitLabel := e.newLabel()
	e.emitTarget(loopLabel)
	e.emit(bytecode.Instr{Op: opcode.JumpIfFalse, Labels: []bytecode.Label{exitLabel}})
	if err := e.assemble(n.Cond); err != nil {
		return err
	}
	err := e.withExit(exitLabel, func() error {
		return e.assembleSeq(n.Body)
	})
	if err != nil {
		return err
	}
	e.emit(bytecode.Instr{Op: opcode.Jump, Labels: []bytecode.Label{loopLabel}})
	e.emitTarget(exitLabel)
	return nil
}
