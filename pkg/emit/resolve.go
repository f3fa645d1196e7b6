package emit

import "github.com/psiberx/redscript/pkg/bytecode"

// resolve is the Label Resolver (spec §4.4): a two-pass walk that turns the
// labeled instruction buffer accumulated during emission into byte-offset
// branch operands.
//
// Pass one computes the byte location of every instruction and records
// where each Target pseudo-instruction sits. Pass two re-walks the buffer,
// this time dropping Targets, and for every label a real instruction
// carries, computes the signed displacement from that instruction's own
// location to its target's recorded location.
func (e *Emitter) resolve() (bytecode.Code, error) {
	locations := make([]int, e.labels)
	seen := make([]bool, e.labels)

	loc := 0
	for _, instr := range e.instrs {
		if instr.IsTarget {
			l := instr.Labels[0]
			if int(l) >= len(locations) {
				return nil, &InternalError{Msg: "target for unknown label"}
			}
			locations[l] = loc
			seen[l] = true
			continue
		}
		loc += instr.Size()
	}

	out := make(bytecode.Code, 0, len(e.instrs))
	loc = 0
	for _, instr := range e.instrs {
		if instr.IsTarget {
			continue
		}
		resolved := instr
		if n := len(instr.Labels); n > 0 {
			resolved.Offsets = make([]int32, n)
			for i, l := range instr.Labels {
				if int(l) >= len(locations) || !seen[l] {
					// A branch referring to a label that was never the
					// target of any Target pseudo-instruction is an
					// internal compiler error (spec §4.4, "Dangling
					// labels").
					return nil, &InternalError{Msg: "dangling label"}
				}
				resolved.Offsets[i] = int32(locations[l] - loc)
			}
		}
		out = append(out, resolved)
		loc += instr.Size()
	}
	return out, nil
}
