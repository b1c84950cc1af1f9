// Package ir is the control-flow graph model consumed by the liveness and
// dead code elimination passes.
//
// A Func is an arena: parameters, constants and instructions all live in one
// slice and are referenced by Value handles; blocks are referenced by BlockID
// handles. Handles stay valid after instructions are removed, so analyses can
// key their tables by them without worrying about dangling references.
//
// Construction:
//
//	f := ir.NewFunc("f")
//	a, b := f.Param("a"), f.Param("b")
//	entry := f.NewBlock("entry")
//	x := f.Emit(entry, ir.OpAdd, "x", a, b)
//	f.Return(entry, x)
package ir

import (
	"fmt"
	"slices"
)

// Value is a handle to a parameter, constant or instruction of a Func.
type Value int32

// NoValue is the zero handle that refers to nothing.
const NoValue Value = -1

// BlockID is a handle to a basic block of a Func.
type BlockID int32

// NoBlock is the zero handle that refers to no block.
const NoBlock BlockID = -1

// Kind tells what a Value stands for.
type Kind uint8

const (
	KindParam Kind = iota
	KindConst
	KindInstr
)

func (k Kind) String() string {
	switch k {
	case KindParam:
		return "param"
	case KindConst:
		return "const"
	case KindInstr:
		return "instr"
	}
	return "invalid"
}

// Incoming is one edge of a join: the value selected when control arrives
// from Pred.
type Incoming struct {
	Pred  BlockID
	Value Value
}

type valueData struct {
	kind    Kind
	name    string
	op      Op
	block   BlockID
	args    []Value
	in      []Incoming
	succs   []BlockID
	uses    int
	removed bool
}

type blockData struct {
	name   string
	instrs []Value
}

// Func is a function in SSA form.
type Func struct {
	Name string

	values []valueData
	blocks []blockData
	params []Value
	live   int // instructions not removed
}

// NewFunc returns an empty function.
func NewFunc(name string) *Func {
	return &Func{Name: name}
}

func (f *Func) fatalf(format string, args ...any) {
	panic(fmt.Sprintf("ir: %s: %s", f.Name, fmt.Sprintf(format, args...)))
}

// =============================================================================
// Construction
// =============================================================================

// Param adds a parameter.
func (f *Func) Param(name string) Value {
	v := f.newValue(valueData{kind: KindParam, name: name, block: NoBlock})
	f.params = append(f.params, v)
	return v
}

// Const adds a constant. Constants are never tracked by liveness.
func (f *Func) Const(name string) Value {
	return f.newValue(valueData{kind: KindConst, name: name, block: NoBlock})
}

// NewBlock appends a block. The first block is the entry.
func (f *Func) NewBlock(name string) BlockID {
	f.blocks = append(f.blocks, blockData{name: name})
	return BlockID(len(f.blocks) - 1)
}

// Emit appends an ordinary instruction to b.
func (f *Func) Emit(b BlockID, op Op, name string, args ...Value) Value {
	if !op.valid() || op.Class() != ClassOrdinary {
		f.fatalf("Emit: %s is not an ordinary op", op)
	}
	f.checkOpen(b)
	return f.appendInstr(b, valueData{kind: KindInstr, name: name, op: op, block: b, args: slices.Clone(args)})
}

// Join appends a join instruction to b. Joins must precede every other
// instruction of the block; incoming edges are added with AddIncoming.
func (f *Func) Join(b BlockID, name string) Value {
	f.checkBlock(b)
	for _, v := range f.blocks[b].instrs {
		if !f.IsJoin(v) {
			f.fatalf("Join: block %s already has non-join %s", f.blocks[b].name, f.Operand(v))
		}
	}
	return f.appendInstr(b, valueData{kind: KindInstr, name: name, op: OpPhi, block: b})
}

// AddIncoming records that join selects v when entered from pred.
func (f *Func) AddIncoming(join Value, pred BlockID, v Value) {
	if !f.IsJoin(join) {
		f.fatalf("AddIncoming: %s is not a join", f.Operand(join))
	}
	f.checkBlock(pred)
	f.checkOperand(v)
	d := &f.values[join]
	d.in = append(d.in, Incoming{Pred: pred, Value: v})
	f.values[v].uses++
}

// Terminate ends b with a terminator.
func (f *Func) Terminate(b BlockID, op Op, succs []BlockID, args ...Value) Value {
	if !op.valid() || op.Class() != ClassTerminator {
		f.fatalf("Terminate: %s is not a terminator op", op)
	}
	f.checkOpen(b)
	for _, s := range succs {
		f.checkBlock(s)
	}
	return f.appendInstr(b, valueData{kind: KindInstr, op: op, block: b, args: slices.Clone(args), succs: slices.Clone(succs)})
}

// Jump ends b with an unconditional transfer to target.
func (f *Func) Jump(b, target BlockID) Value {
	return f.Terminate(b, OpJump, []BlockID{target})
}

// Branch ends b with a two-way transfer on cond.
func (f *Func) Branch(b BlockID, cond Value, then, els BlockID) Value {
	return f.Terminate(b, OpBranch, []BlockID{then, els}, cond)
}

// Return ends b with a return of results.
func (f *Func) Return(b BlockID, results ...Value) Value {
	return f.Terminate(b, OpReturn, nil, results...)
}

func (f *Func) newValue(d valueData) Value {
	f.values = append(f.values, d)
	return Value(len(f.values) - 1)
}

func (f *Func) appendInstr(b BlockID, d valueData) Value {
	for _, a := range d.args {
		f.checkOperand(a)
	}
	v := f.newValue(d)
	for _, a := range d.args {
		f.values[a].uses++
	}
	f.blocks[b].instrs = append(f.blocks[b].instrs, v)
	f.live++
	return v
}

func (f *Func) checkBlock(b BlockID) {
	if b < 0 || int(b) >= len(f.blocks) {
		f.fatalf("invalid block %d", b)
	}
}

func (f *Func) checkOpen(b BlockID) {
	f.checkBlock(b)
	if _, ok := f.Terminator(b); ok {
		f.fatalf("block %s is already terminated", f.blocks[b].name)
	}
}

func (f *Func) checkOperand(v Value) {
	if v < 0 || int(v) >= len(f.values) {
		f.fatalf("invalid value %d", v)
	}
	if f.values[v].removed {
		f.fatalf("operand %s was removed", f.Operand(v))
	}
}

// =============================================================================
// Queries
// =============================================================================

// NumValues returns the size of the value arena, removed instructions included.
func (f *Func) NumValues() int { return len(f.values) }

// NumInstrs returns the number of instructions still in the function.
func (f *Func) NumInstrs() int { return f.live }

// Params returns the parameters in declaration order.
func (f *Func) Params() []Value { return f.params }

// Blocks returns all block handles in CFG order.
func (f *Func) Blocks() []BlockID {
	bs := make([]BlockID, len(f.blocks))
	for i := range bs {
		bs[i] = BlockID(i)
	}
	return bs
}

// Entry returns the entry block, or NoBlock for an empty function.
func (f *Func) Entry() BlockID {
	if len(f.blocks) == 0 {
		return NoBlock
	}
	return 0
}

// BlockName returns the label b was created with.
func (f *Func) BlockName(b BlockID) string { return f.blocks[b].name }

// Instrs returns the instructions of b in order. The slice is owned by f and
// must not be modified.
func (f *Func) Instrs(b BlockID) []Value { return f.blocks[b].instrs }

// Terminator returns the terminator of b, if it has one.
func (f *Func) Terminator(b BlockID) (Value, bool) {
	instrs := f.blocks[b].instrs
	if n := len(instrs); n > 0 && f.IsTerminator(instrs[n-1]) {
		return instrs[n-1], true
	}
	return NoValue, false
}

// Succs returns the successors of b named by its terminator.
func (f *Func) Succs(b BlockID) []BlockID {
	t, ok := f.Terminator(b)
	if !ok {
		return nil
	}
	return f.values[t].succs
}

// Preds returns the distinct blocks whose terminators name b, in CFG order.
func (f *Func) Preds(b BlockID) []BlockID {
	var preds []BlockID
	for p := range f.blocks {
		if slices.Contains(f.Succs(BlockID(p)), b) {
			preds = append(preds, BlockID(p))
		}
	}
	return preds
}

// Kind returns what v stands for.
func (f *Func) Kind(v Value) Kind { return f.values[v].kind }

// ValueName returns the name v was created with; it may be empty.
func (f *Func) ValueName(v Value) string { return f.values[v].name }

// Op returns the op of an instruction; OpInvalid for parameters and constants.
func (f *Func) Op(v Value) Op { return f.values[v].op }

// Block returns the block an instruction belongs to, or belonged to before
// removal. Parameters and constants return NoBlock.
func (f *Func) Block(v Value) BlockID { return f.values[v].block }

// Args returns the operands of an instruction. Join operands are edge
// specific and reported by Incoming instead.
func (f *Func) Args(v Value) []Value { return f.values[v].args }

// Incoming returns the edges of a join.
func (f *Func) Incoming(v Value) []Incoming { return f.values[v].in }

// Uses returns how many operand slots of live instructions refer to v.
func (f *Func) Uses(v Value) int { return f.values[v].uses }

// Removed reports whether the instruction was deleted.
func (f *Func) Removed(v Value) bool { return f.values[v].removed }

// IsInstr reports whether v is an instruction.
func (f *Func) IsInstr(v Value) bool { return f.values[v].kind == KindInstr }

// IsJoin reports whether v is a join instruction.
func (f *Func) IsJoin(v Value) bool {
	return f.IsInstr(v) && f.values[v].op.Class() == ClassJoin
}

// IsTerminator reports whether v is a terminator.
func (f *Func) IsTerminator(v Value) bool {
	return f.IsInstr(v) && f.values[v].op.Class() == ClassTerminator
}

// IsCall reports whether v invokes other code.
func (f *Func) IsCall(v Value) bool { return f.values[v].op.IsCall() }

// HasSideEffects reports whether v has an effect other than a call.
func (f *Func) HasSideEffects(v Value) bool { return f.values[v].op.HasSideEffects() }

// Tracked reports whether liveness follows v: parameters and instructions
// are tracked, constants are not.
func (f *Func) Tracked(v Value) bool { return f.values[v].kind != KindConst }

// =============================================================================
// Mutation
// =============================================================================

// Remove deletes a batch of instructions from their blocks.
//
// Every instruction that uses a removed one must itself be in the batch;
// otherwise Remove panics before changing anything. Terminators cannot be
// removed.
func (f *Func) Remove(vs ...Value) {
	batch := make(map[Value]bool, len(vs))
	for _, v := range vs {
		if v < 0 || int(v) >= len(f.values) || !f.IsInstr(v) || f.values[v].removed {
			f.fatalf("Remove: %d is not a live instruction", v)
		}
		if f.IsTerminator(v) {
			f.fatalf("Remove: cannot remove terminator of block %s", f.blocks[f.values[v].block].name)
		}
		if batch[v] {
			f.fatalf("Remove: %s listed twice", f.Operand(v))
		}
		batch[v] = true
	}

	internal := make(map[Value]int)
	for v := range batch {
		for _, a := range f.operands(v) {
			if batch[a] {
				internal[a]++
			}
		}
	}
	for _, v := range vs {
		if outside := f.values[v].uses - internal[v]; outside > 0 {
			f.fatalf("Remove: %s still has %d use(s)", f.Operand(v), outside)
		}
	}

	touched := make(map[BlockID]bool)
	for _, v := range vs {
		for _, a := range f.operands(v) {
			f.values[a].uses--
		}
		f.values[v].removed = true
		touched[f.values[v].block] = true
		f.live--
	}
	for b := range touched {
		f.blocks[b].instrs = slices.DeleteFunc(f.blocks[b].instrs, func(v Value) bool {
			return f.values[v].removed
		})
	}
}

// operands returns every value v refers to, join edges included.
func (f *Func) operands(v Value) []Value {
	d := &f.values[v]
	if len(d.in) == 0 {
		return d.args
	}
	ops := slices.Clone(d.args)
	for _, e := range d.in {
		ops = append(ops, e.Value)
	}
	return ops
}
