package ssa

import (
	"go/token"

	"golang.org/x/tools/go/ssa"
)

// describe names what a removed instruction computed, for diagnostics:
//
//	t0 = a + b          → "result of +"
//	t1 = phi [...] #&&  → "result of &&"
//	t2 = convert int    → "conversion"
func describe(instr ssa.Instruction) string {
	switch instr := instr.(type) {
	case *ssa.BinOp:
		return "result of " + instr.Op.String()
	case *ssa.UnOp:
		return "result of unary " + instr.Op.String()
	case *ssa.Phi:
		if instr.Comment == token.LAND.String() || instr.Comment == token.LOR.String() {
			return "result of " + instr.Comment
		}
		return "merged value"
	case *ssa.Convert, *ssa.ChangeType, *ssa.ChangeInterface:
		return "conversion"
	case *ssa.MakeInterface:
		return "interface conversion"
	case *ssa.MakeClosure:
		return "closure"
	case *ssa.Alloc:
		return "allocation"
	case *ssa.Field:
		return "field selection"
	case *ssa.Extract:
		return "tuple element"
	case *ssa.Lookup:
		return "map lookup"
	case *ssa.TypeAssert:
		return "type assertion"
	case *ssa.MakeMap:
		return "map construction"
	case *ssa.Range:
		return "range iterator"
	}
	return "value"
}
