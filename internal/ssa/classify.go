package ssa

import (
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/livedce/internal/ir"
)

// =============================================================================
// Instruction Classification
//
// opFor decides, once per go/ssa instruction, which ir op stands for it. The
// op carries the effect flags, so this is where "may this be deleted" is
// answered for Go code.
//
// Anything that can panic, block, write memory or run other code is effectful,
// because deleting it would change what the program observably does:
//
//	_ = a / b      // may panic (b == 0)      → OpEffect
//	_ = *p         // may panic (p == nil)    → OpEffect
//	_ = <-ch       // blocks                  → OpEffect
//	_ = s[i]       // may panic (bounds)      → OpEffect
//	_ = a + b      // never fails             → OpAdd
//	_ = float64(a) // never fails             → OpPure
// =============================================================================

func opFor(instr ssa.Instruction) ir.Op {
	switch instr := instr.(type) {
	// Terminators.
	case *ssa.Jump:
		return ir.OpJump
	case *ssa.If:
		return ir.OpBranch
	case *ssa.Return:
		return ir.OpReturn
	case *ssa.Panic:
		return ir.OpPanic

	case *ssa.Phi:
		return ir.OpPhi

	// Calls.
	case *ssa.Call, *ssa.Go, *ssa.Defer:
		return ir.OpCall

	// Writes and other effects.
	case *ssa.Store, *ssa.MapUpdate:
		return ir.OpStore
	case *ssa.Send, *ssa.Select, *ssa.Next, *ssa.RunDefers:
		return ir.OpEffect

	case *ssa.BinOp:
		return binOp(instr)
	case *ssa.UnOp:
		return unOp(instr)

	case *ssa.Alloc:
		return ir.OpAlloc

	case *ssa.TypeAssert:
		if instr.CommaOk {
			return ir.OpPure
		}
		return ir.OpEffect

	case *ssa.Lookup:
		if !isMapWithComparableKey(instr.X.Type()) {
			return ir.OpEffect
		}
		return ir.OpLoad

	case *ssa.MakeMap:
		if instr.Reserve != nil && !isConst(instr.Reserve) {
			return ir.OpEffect
		}
		return ir.OpPure

	case *ssa.ChangeType, *ssa.ChangeInterface, *ssa.Convert,
		*ssa.MakeInterface, *ssa.MakeClosure, *ssa.Extract, *ssa.Field, *ssa.Range:
		return ir.OpPure

	// Index, IndexAddr, FieldAddr, Slice, SliceToArrayPointer, MakeSlice,
	// MakeChan, MultiConvert and anything added to go/ssa later.
	default:
		return ir.OpEffect
	}
}

func binOp(instr *ssa.BinOp) ir.Op {
	switch instr.Op {
	case token.ADD:
		return ir.OpAdd
	case token.SUB:
		return ir.OpSub
	case token.MUL:
		return ir.OpMul
	case token.QUO:
		if mayDivideByZero(instr) {
			return ir.OpEffect
		}
		return ir.OpDiv
	case token.REM:
		if mayDivideByZero(instr) {
			return ir.OpEffect
		}
		return ir.OpRem
	case token.AND, token.AND_NOT:
		return ir.OpAnd
	case token.OR:
		return ir.OpOr
	case token.XOR:
		return ir.OpXor
	case token.SHL, token.SHR:
		// A negative signed shift count panics.
		if !isConst(instr.Y) && !isUnsigned(instr.Y.Type()) {
			return ir.OpEffect
		}
		if instr.Op == token.SHL {
			return ir.OpShl
		}
		return ir.OpShr
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		// Comparing interfaces holding uncomparable dynamic types panics.
		if isInterfaceLike(instr.X.Type()) || isInterfaceLike(instr.Y.Type()) {
			return ir.OpEffect
		}
		return ir.OpCmp
	}
	return ir.OpEffect
}

func unOp(instr *ssa.UnOp) ir.Op {
	switch instr.Op {
	case token.SUB:
		return ir.OpNeg
	case token.NOT, token.XOR:
		return ir.OpNot
	}
	// token.MUL dereferences (nil panics), token.ARROW receives (blocks).
	return ir.OpEffect
}

func mayDivideByZero(instr *ssa.BinOp) bool {
	if !mayBeInteger(instr.Type()) {
		return false
	}
	c, ok := instr.Y.(*ssa.Const)
	if !ok || c.Value == nil {
		return true
	}
	return constant.Sign(c.Value) == 0
}

func isConst(v ssa.Value) bool {
	_, ok := v.(*ssa.Const)
	return ok
}

// mayBeInteger reports whether t is an integer type or a type parameter that
// might be instantiated with one.
func mayBeInteger(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return true
	}
	return basic.Info()&types.IsInteger != 0
}

func isUnsigned(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsUnsigned != 0
}

// isInterfaceLike reports whether comparing values of type t may panic.
// Type parameters have interface underlying types and are covered too.
func isInterfaceLike(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Interface, *types.Struct, *types.Array:
		// Structs and arrays may contain interface fields.
		return true
	}
	return false
}

// isMapWithComparableKey reports whether a lookup on a value of type t can
// never panic: a map whose key type is not an interface.
func isMapWithComparableKey(t types.Type) bool {
	m, ok := t.Underlying().(*types.Map)
	if !ok {
		// Indexing a string may be out of range.
		return false
	}
	return !isInterfaceLike(m.Key())
}
