package dce

import (
	"fmt"
	"io"

	"github.com/mpyw/livedce/internal/ir"
	"github.com/mpyw/livedce/internal/liveness"
)

// Options configures Run.
type Options struct {
	// Trace, if non-nil, receives the liveness trace of the first round
	// (see liveness.WriteTrace). It is written at most once per Run. A write
	// error does not stop elimination; it is reported in Result.TraceErr.
	Trace io.Writer

	// OnRound, if non-nil, is called after every round.
	OnRound func(Round)
}

// Round describes one {analyze, eliminate} cycle.
type Round struct {
	Index   int // 1-based
	Func    *ir.Func
	Live    *liveness.Result
	Removed []ir.Value
}

// Result summarizes a Run.
type Result struct {
	// Changed reports whether any instruction was removed.
	Changed bool
	// Rounds counts every round, the final one that removed nothing included.
	Rounds int
	// Removed lists removed instructions in removal order.
	Removed []ir.Value
	// TraceErr is the error returned while writing Options.Trace, if any.
	TraceErr error
}

// Run eliminates dead instructions from fn until none remain.
//
// fn must satisfy fn.Validate; Run panics otherwise.
func Run(fn *ir.Func, opts Options) Result {
	if err := fn.Validate(); err != nil {
		panic(fmt.Sprintf("dce: %s: malformed function: %v", fn.Name, err))
	}

	var res Result
	traced := false
	limit := fn.NumInstrs() + 1

	for {
		if res.Rounds >= limit {
			panic(fmt.Sprintf("dce: %s: still removing after %d rounds", fn.Name, res.Rounds))
		}
		res.Rounds++

		live := liveness.Analyze(fn)
		if opts.Trace != nil && !traced {
			traced = true
			res.TraceErr = liveness.WriteTrace(opts.Trace, fn, live)
		}

		removed := Eliminate(fn, live)
		res.Removed = append(res.Removed, removed...)
		if opts.OnRound != nil {
			opts.OnRound(Round{Index: res.Rounds, Func: fn, Live: live, Removed: removed})
		}
		if len(removed) == 0 {
			break
		}
		res.Changed = true
	}
	return res
}
