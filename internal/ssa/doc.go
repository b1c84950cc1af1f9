// Package ssa connects golang.org/x/tools/go/ssa to the dead code passes.
//
// The package contains:
//   - Convert: copies an *ssa.Function into an ir.Func, remembering where
//     every ir instruction came from
//   - opFor: decides which go/ssa instructions may be deleted at all
//   - Analyzer: runs dce.Run on the copy and turns removals into findings
//
// The go/ssa program is shared by every analyzer in a pass and must not be
// mutated, which is why elimination runs on a copy.
package ssa
