// Package dce removes instructions whose value is never observed.
//
// Removal is driven by liveness: an instruction is dead when its own value is
// not live immediately after it. Calls, terminators and instructions with
// other effects are kept regardless. Deleting an instruction can make its
// operands dead, so Run repeats analysis and elimination until a round
// removes nothing.
package dce

import (
	"github.com/mpyw/livedce/internal/ir"
	"github.com/mpyw/livedce/internal/liveness"
)

// Removable reports whether v can be deleted given the live sets of the
// current round.
func Removable(fn *ir.Func, live *liveness.Result, v ir.Value) bool {
	if !fn.IsInstr(v) || fn.Removed(v) {
		return false
	}
	if fn.IsCall(v) || fn.HasSideEffects(v) || fn.IsTerminator(v) {
		return false
	}
	return !live.LiveAcross(v)
}
