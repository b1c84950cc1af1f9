package ir

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks the structural invariants the passes rely on:
//
//   - joins form a contiguous prefix of their block
//   - a terminator, if present, is the last instruction
//   - every join has exactly one edge set matching its block's predecessors
//   - operands refer to existing, non-removed values
//
// Dominance of operands over their uses is assumed, not checked.
func (f *Func) Validate() error {
	var errs []error
	for b := range f.blocks {
		errs = append(errs, f.validateBlock(BlockID(b))...)
	}
	return errors.Join(errs...)
}

func (f *Func) validateBlock(b BlockID) []error {
	var errs []error
	name := f.blocks[b].name
	instrs := f.blocks[b].instrs
	preds := f.Preds(b)

	inPrefix := true
	for i, v := range instrs {
		d := &f.values[v]
		if d.removed {
			errs = append(errs, fmt.Errorf("block %s: removed instruction %s still listed", name, f.Operand(v)))
			continue
		}
		if d.block != b {
			errs = append(errs, fmt.Errorf("block %s: %s belongs to block %d", name, f.Operand(v), d.block))
		}

		switch d.op.Class() {
		case ClassJoin:
			if !inPrefix {
				errs = append(errs, fmt.Errorf("block %s: join %s follows a non-join", name, f.Operand(v)))
			}
			errs = append(errs, f.validateJoin(v, preds)...)
		case ClassTerminator:
			inPrefix = false
			if i != len(instrs)-1 {
				errs = append(errs, fmt.Errorf("block %s: terminator is not the last instruction", name))
			}
		default:
			inPrefix = false
		}

		for _, a := range d.args {
			if err := f.validateOperand(v, a); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func (f *Func) validateJoin(v Value, preds []BlockID) []error {
	var errs []error
	var seen []BlockID
	for _, e := range f.values[v].in {
		if err := f.validateOperand(v, e.Value); err != nil {
			errs = append(errs, err)
		}
		if !slices.Contains(preds, e.Pred) {
			errs = append(errs, fmt.Errorf("join %s: %s is not a predecessor of its block", f.Operand(v), f.blocks[e.Pred].name))
			continue
		}
		if !slices.Contains(seen, e.Pred) {
			seen = append(seen, e.Pred)
		}
	}
	for _, p := range preds {
		if !slices.Contains(seen, p) {
			errs = append(errs, fmt.Errorf("join %s: no incoming value from %s", f.Operand(v), f.blocks[p].name))
		}
	}
	return errs
}

func (f *Func) validateOperand(user, v Value) error {
	if v < 0 || int(v) >= len(f.values) {
		return fmt.Errorf("%s: operand %d out of range", f.Operand(user), v)
	}
	if f.values[v].removed {
		return fmt.Errorf("%s: operand %s was removed", f.Operand(user), f.Operand(v))
	}
	return nil
}
