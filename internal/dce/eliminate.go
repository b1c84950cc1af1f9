package dce

import (
	"slices"

	"github.com/mpyw/livedce/internal/ir"
	"github.com/mpyw/livedce/internal/liveness"
)

// Collect returns every removable instruction, blocks in CFG order and
// instructions in block order.
func Collect(fn *ir.Func, live *liveness.Result) []ir.Value {
	var worklist []ir.Value
	for _, b := range fn.Blocks() {
		for _, v := range fn.Instrs(b) {
			if Removable(fn, live, v) {
				worklist = append(worklist, v)
			}
		}
	}
	return unpinned(fn, worklist)
}

// unpinned drops worklist members still used by an instruction that stays.
//
// On a reachable path a use always makes its operand live, so this only
// matters for uses in blocks unreachable from the entry: liveness never
// flows out of such a block, yet its instructions still hold references.
func unpinned(fn *ir.Func, worklist []ir.Value) []ir.Value {
	for len(worklist) > 0 {
		dead := make(map[ir.Value]bool, len(worklist))
		for _, v := range worklist {
			dead[v] = true
		}
		pinned := make(map[ir.Value]bool)
		for _, b := range fn.Blocks() {
			for _, u := range fn.Instrs(b) {
				if dead[u] {
					continue
				}
				for _, a := range fn.Args(u) {
					pinned[a] = true
				}
				for _, e := range fn.Incoming(u) {
					pinned[e.Value] = true
				}
			}
		}
		n := len(worklist)
		worklist = slices.DeleteFunc(worklist, func(v ir.Value) bool { return pinned[v] })
		if len(worklist) == n {
			break
		}
	}
	return worklist
}

// Eliminate deletes every instruction Collect finds and returns them.
//
// The worklist is complete before anything is deleted: live was computed on
// the unmodified function, and a deletion never revives another member.
func Eliminate(fn *ir.Func, live *liveness.Result) []ir.Value {
	worklist := Collect(fn, live)
	if len(worklist) > 0 {
		fn.Remove(worklist...)
	}
	return worklist
}
