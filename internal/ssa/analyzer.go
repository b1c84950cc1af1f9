package ssa

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/livedce/internal/dce"
)

// Finding is one instruction the dead code passes removed.
type Finding struct {
	Pos     token.Pos
	Message string
	Instr   ssa.Instruction
	Round   int // 1-based round that removed it
}

// Analyzer runs dead code elimination on a copy of one go/ssa function.
//
// Example usage:
//
//	analyzer := ssa.NewAnalyzer(fn)
//	findings, err := analyzer.Analyze(dce.Options{})
//	for _, f := range findings {
//	    report(f.Pos, f.Message)
//	}
type Analyzer struct {
	fn *ssa.Function
}

// NewAnalyzer creates an Analyzer for fn. fn may be nil.
func NewAnalyzer(fn *ssa.Function) *Analyzer {
	return &Analyzer{fn: fn}
}

// Analyze converts the function, runs the fixpoint driver and returns every
// removed instruction in removal order. The go/ssa function is not modified.
//
// Instructions without a source position (implicit conversions and the like)
// are removed as usual but yield no finding. Neither do instructions inside a
// switch case expression: go/ssa compares the tag against it and, once jump
// threading has merged both targets of that test, nothing reads the result.
func (a *Analyzer) Analyze(opts dce.Options) ([]Finding, error) {
	if a.fn == nil || a.fn.Blocks == nil {
		return nil, nil
	}

	conv, err := Convert(a.fn)
	if err != nil {
		return nil, err
	}

	cases := caseSpans(a.fn)

	var findings []Finding
	onRound := opts.OnRound
	opts.OnRound = func(r dce.Round) {
		for _, v := range r.Removed {
			instr := conv.Origin(v)
			if instr == nil || !instr.Pos().IsValid() || cases.contain(instr.Pos()) {
				continue
			}
			findings = append(findings, Finding{
				Pos:     instr.Pos(),
				Message: describe(instr) + " is never used",
				Instr:   instr,
				Round:   r.Index,
			})
		}
		if onRound != nil {
			onRound(r)
		}
	}

	dce.Run(conv.Func, opts)
	return findings, nil
}

type span struct{ pos, end token.Pos }

type spans []span

func (s spans) contain(pos token.Pos) bool {
	for _, sp := range s {
		if sp.pos <= pos && pos < sp.end {
			return true
		}
	}
	return false
}

// caseSpans returns the source ranges of the case expressions of every
// expression switch in fn's syntax.
func caseSpans(fn *ssa.Function) spans {
	syntax := fn.Syntax()
	if syntax == nil {
		return nil
	}

	var result spans
	ast.Inspect(syntax, func(n ast.Node) bool {
		sw, ok := n.(*ast.SwitchStmt)
		if !ok {
			return true
		}
		for _, stmt := range sw.Body.List {
			for _, expr := range stmt.(*ast.CaseClause).List {
				result = append(result, span{expr.Pos(), expr.End()})
			}
		}
		return true
	})
	return result
}
