package ssa

import (
	"fmt"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/livedce/internal/ir"
)

// =============================================================================
// Conversion
//
// Conversion copies an *ssa.Function into an ir.Func so the dead code passes
// can delete instructions without touching the shared go/ssa program.
//
// Mapping:
//   - Parameters and free variables  → ir params (tracked by liveness)
//   - Constants, globals, functions  → ir consts (not tracked)
//   - Phi                            → ir join, edges paired with Block.Preds
//   - Jump / If / Return / Panic     → ir terminators
//   - DebugRef                       → dropped (it observes, never uses)
//   - everything else                → ordinary op chosen by opFor
//
// Blocks are created in fn.Blocks order, but instructions are converted in
// dominator-tree preorder so that every non-phi operand is converted before
// its user. Phi edges are filled in last because loops make them refer
// forward.
// =============================================================================

// Conversion is the ir copy of one go/ssa function.
type Conversion struct {
	Func *ir.Func

	origins map[ir.Value]ssa.Instruction
	values  map[ssa.Value]ir.Value
	blocks  map[*ssa.BasicBlock]ir.BlockID
}

// Origin returns the go/ssa instruction v was converted from.
func (c *Conversion) Origin(v ir.Value) ssa.Instruction {
	return c.origins[v]
}

// Convert builds the ir copy of fn.
func Convert(fn *ssa.Function) (*Conversion, error) {
	c := &Conversion{
		Func:    ir.NewFunc(fn.String()),
		origins: make(map[ir.Value]ssa.Instruction),
		values:  make(map[ssa.Value]ir.Value),
		blocks:  make(map[*ssa.BasicBlock]ir.BlockID),
	}

	for _, p := range fn.Params {
		c.values[p] = c.Func.Param(p.Name())
	}
	for _, fv := range fn.FreeVars {
		c.values[fv] = c.Func.Param(fv.Name())
	}
	for _, b := range fn.Blocks {
		c.blocks[b] = c.Func.NewBlock(fmt.Sprintf("%d.%s", b.Index, b.Comment))
	}

	var phis []*ssa.Phi
	for _, b := range convertOrder(fn) {
		for _, instr := range b.Instrs {
			if phi, ok := instr.(*ssa.Phi); ok {
				phis = append(phis, phi)
			}
			if err := c.convertInstr(b, instr); err != nil {
				return nil, fmt.Errorf("%s: %w", fn, err)
			}
		}
	}

	for _, phi := range phis {
		join := c.values[phi]
		preds := phi.Block().Preds
		if len(preds) != len(phi.Edges) {
			return nil, fmt.Errorf("%s: %s has %d edges for %d predecessors", fn, phi.Name(), len(phi.Edges), len(preds))
		}
		for i, edge := range phi.Edges {
			v, err := c.operand(edge)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fn, err)
			}
			c.Func.AddIncoming(join, c.blocks[preds[i]], v)
		}
	}

	if err := c.Func.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return c, nil
}

// convertOrder returns the blocks in dominator-tree preorder followed by any
// block the dominator tree does not cover.
func convertOrder(fn *ssa.Function) []*ssa.BasicBlock {
	order := fn.DomPreorder()
	seen := make(map[*ssa.BasicBlock]bool, len(order))
	for _, b := range order {
		seen[b] = true
	}
	for _, b := range fn.Blocks {
		if !seen[b] {
			order = append(order, b)
		}
	}
	return order
}

func (c *Conversion) convertInstr(b *ssa.BasicBlock, instr ssa.Instruction) error {
	block := c.blocks[b]

	switch instr := instr.(type) {
	case *ssa.DebugRef:
		return nil

	case *ssa.Phi:
		v := c.Func.Join(block, instr.Name())
		c.record(v, instr)
		return nil

	case *ssa.Jump, *ssa.If, *ssa.Return, *ssa.Panic:
		args, err := c.operands(instr)
		if err != nil {
			return err
		}
		succs := make([]ir.BlockID, len(b.Succs))
		for i, s := range b.Succs {
			succs[i] = c.blocks[s]
		}
		v := c.Func.Terminate(block, opFor(instr), succs, args...)
		c.origins[v] = instr
		return nil
	}

	args, err := c.operands(instr)
	if err != nil {
		return err
	}
	var name string
	if v, ok := instr.(ssa.Value); ok {
		name = v.Name()
	}
	v := c.Func.Emit(block, opFor(instr), name, args...)
	c.record(v, instr)
	return nil
}

func (c *Conversion) record(v ir.Value, instr ssa.Instruction) {
	c.origins[v] = instr
	if sv, ok := instr.(ssa.Value); ok {
		c.values[sv] = v
	}
}

func (c *Conversion) operands(instr ssa.Instruction) ([]ir.Value, error) {
	var args []ir.Value
	for _, op := range instr.Operands(nil) {
		if op == nil || *op == nil {
			continue
		}
		v, err := c.operand(*op)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (c *Conversion) operand(sv ssa.Value) (ir.Value, error) {
	if v, ok := c.values[sv]; ok {
		return v, nil
	}
	switch sv.(type) {
	case *ssa.Parameter, *ssa.FreeVar:
		return ir.NoValue, fmt.Errorf("%s belongs to another function", sv.Name())
	case ssa.Instruction:
		return ir.NoValue, fmt.Errorf("%s is used before its definition is converted", sv.Name())
	}
	// Constants, globals, functions and builtins are not tracked.
	v := c.Func.Const(sv.Name())
	c.values[sv] = v
	return v, nil
}
