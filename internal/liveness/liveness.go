// Package liveness computes which SSA values are live before and after every
// instruction of an ir.Func.
//
// # Equations
//
// For every instruction n:
//
//	USE[n] = tracked operands of n (empty for a join)
//	DEF[n] = {n} unless n is a terminator
//	IN[n]  = USE[n] ∪ (OUT[n] \ DEF[n])
//	OUT[n] = ∪ IN[s] over the dataflow successors s of n
//
// The dataflow successor of a non-terminator is the next instruction of its
// block; the successors of a terminator are the first instructions of its
// successor blocks.
//
// # Joins
//
// A join reads its operands on the incoming edges, not in its own block. So
// when a terminator of block P flows into a block headed by joins, OUT of
// that terminator also receives, for every join at that block head, the value
// the join selects for P:
//
//	p1:  %x1 = add %a, 1        p2:  %x2 = add %a, 2
//	     jump m                      jump m
//	           \                    /
//	        m:  %z = phi [%x1, p1], [%x2, p2]
//	            ret %z
//
//	OUT[jump in p1] ∋ %x1    OUT[jump in p2] ∋ %x2
//
// # Iteration
//
// Sets start empty and grow monotonically; sweeps repeat until one changes
// nothing. Sets are bounded by the value arena, so the number of sweeps is
// bounded too, and exceeding that bound panics.
package liveness

import (
	"fmt"

	"github.com/mpyw/livedce/internal/ir"
)

// Result holds the IN and OUT sets of one analysis.
type Result struct {
	in     []Set // indexed by ir.Value; empty for non-instructions
	out    []Set
	sweeps int
}

// In returns the values live immediately before v.
func (r *Result) In(v ir.Value) Set {
	if v < 0 || int(v) >= len(r.in) {
		return Set{}
	}
	return r.in[v]
}

// Out returns the values live immediately after v.
func (r *Result) Out(v ir.Value) Set {
	if v < 0 || int(v) >= len(r.out) {
		return Set{}
	}
	return r.out[v]
}

// LiveAcross reports whether the value defined by v is still needed after v.
// An instruction for which this is false computes nothing anyone reads.
func (r *Result) LiveAcross(v ir.Value) bool {
	return r.Out(v).Has(v)
}

// Sweeps returns how many sweeps were run, the final unchanged one included.
func (r *Result) Sweeps() int { return r.sweeps }

// Analyzer runs the fixed-point iteration one sweep at a time.
//
// The function must not be mutated while an Analyzer is in use.
type Analyzer struct {
	fn    *ir.Func
	order []ir.Value // sweep order
	next  []ir.Value // next instruction in the same block, or ir.NoValue
	res   *Result
	limit int

	scratchIn  Set
	scratchOut Set
}

// New prepares an analysis of fn with every set empty.
func New(fn *ir.Func) *Analyzer {
	n := fn.NumValues()
	a := &Analyzer{
		fn:         fn,
		next:       make([]ir.Value, n),
		res:        &Result{in: make([]Set, n), out: make([]Set, n)},
		scratchIn:  newSet(n),
		scratchOut: newSet(n),
		limit:      2*fn.NumInstrs()*n + 2,
	}

	for _, b := range sweepBlocks(fn) {
		instrs := fn.Instrs(b)
		for i := len(instrs) - 1; i >= 0; i-- {
			v := instrs[i]
			a.order = append(a.order, v)
			a.next[v] = ir.NoValue
			if i+1 < len(instrs) {
				a.next[v] = instrs[i+1]
			}
			a.res.in[v] = newSet(n)
			a.res.out[v] = newSet(n)
		}
	}
	return a
}

// sweepBlocks orders blocks so that successors are mostly visited before
// their predecessors. Unreachable blocks go last, in CFG order.
func sweepBlocks(fn *ir.Func) []ir.BlockID {
	order := fn.PostOrder()
	reachable := fn.Reachable()
	for _, b := range fn.Blocks() {
		if !reachable[b] {
			order = append(order, b)
		}
	}
	return order
}

// Sweep recomputes IN and OUT of every instruction once and reports whether
// any set changed.
func (a *Analyzer) Sweep() bool {
	if a.res.sweeps >= a.limit {
		panic(fmt.Sprintf("liveness: %s: no fixed point after %d sweeps", a.fn.Name, a.res.sweeps))
	}
	a.res.sweeps++

	changed := false
	for _, v := range a.order {
		out := a.scratchOut
		out.clear()
		a.flowOut(v, out)

		in := a.scratchIn
		in.copyFrom(out)
		if !a.fn.IsTerminator(v) {
			in.remove(v)
		}
		if !a.fn.IsJoin(v) {
			for _, arg := range a.fn.Args(v) {
				if a.fn.Tracked(arg) {
					in.add(arg)
				}
			}
		}

		if !out.Equal(a.res.out[v]) {
			a.res.out[v].copyFrom(out)
			changed = true
		}
		if !in.Equal(a.res.in[v]) {
			a.res.in[v].copyFrom(in)
			changed = true
		}
	}
	return changed
}

// flowOut accumulates OUT[v] into out.
func (a *Analyzer) flowOut(v ir.Value, out Set) {
	if !a.fn.IsTerminator(v) {
		// Also covers a join followed by another join: the successor's IN
		// already excludes every join defined from it onwards.
		if next := a.next[v]; next != ir.NoValue {
			out.unionWith(a.res.in[next])
		}
		return
	}

	from := a.fn.Block(v)
	for _, succ := range a.fn.Succs(from) {
		instrs := a.fn.Instrs(succ)
		if len(instrs) == 0 {
			continue
		}
		out.unionWith(a.res.in[instrs[0]])
		for _, j := range instrs {
			if !a.fn.IsJoin(j) {
				break
			}
			for _, e := range a.fn.Incoming(j) {
				if e.Pred == from && a.fn.Tracked(e.Value) {
					out.add(e.Value)
				}
			}
		}
	}
}

// Result returns the sets computed so far.
func (a *Analyzer) Result() *Result { return a.res }

// Analyze runs sweeps until a fixed point is reached.
func Analyze(fn *ir.Func) *Result {
	a := New(fn)
	for a.Sweep() {
	}
	return a.Result()
}
