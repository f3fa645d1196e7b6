package emit

import (
	"github.com/psiberx/redscript/pkg/ast"
	"github.com/psiberx/redscript/pkg/bytecode"
	"github.com/psiberx/redscript/pkg/opcode"
)

// assembleSwitch lowers a switch to a chain of labeled comparisons (spec
// §4.1.b). Cases with an empty body are coalesced into the next non-empty
// body — that's how fall-through is expressed in the source language.
func (e *Emitter) assembleSwitch(n ast.Switch) error {
	firstCaseLabel := e.newLabel()
	nextCaseLabel := e.newLabel()
	exitLabel := e.newLabel()

	typeIdx, err := e.scope.GetTypeIndex(n.ScrutineeType, e.pool)
	if err != nil {
		return poolLookupError(err)
	}
	e.emit(bytecode.Instr{Op: opcode.Switch, Int: []int64{int64(typeIdx)}, Labels: []bytecode.Label{firstCaseLabel}})
	if err := e.assemble(n.Scrutinee); err != nil {
		return err
	}
	e.emitTarget(firstCaseLabel)

	i := 0
	for i < len(n.Cases) {
		bodyLabel := e.newLabel()
		matched := false
		for ; i < len(n.Cases); i++ {
			c := n.Cases[i]
			e.emitTarget(nextCaseLabel)
			nextCaseLabel = e.newLabel()
			e.emit(bytecode.Instr{Op: opcode.SwitchLabel, Labels: []bytecode.Label{nextCaseLabel, bodyLabel}})
			if err := e.assemble(c.Matcher); err != nil {
				return err
			}
			if !c.Body.IsEmpty() {
				e.emitTarget(bodyLabel)
				err := e.withExit(exitLabel, func() error {
					return e.assembleSeq(c.Body)
				})
				if err != nil {
					return err
				}
				i++
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	e.emitTarget(nextCaseLabel)

	if n.Default != nil {
		e.emit(bytecode.Instr{Op: opcode.SwitchDefault})
		err := e.withExit(exitLabel, func() error {
			return e.assembleSeq(*n.Default)
		})
		if err != nil {
			return err
		}
	}
	e.emitTarget(exitLabel)
	return nil
}
