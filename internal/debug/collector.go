// Package debug collects per-function diagnostics for the -debugfunc flag.
package debug

import (
	"strings"

	"github.com/mpyw/livedce/internal/dce"
)

// Collector records what the dead code passes did to one function.
// This keeps debug logic isolated from the main analysis code.
type Collector struct {
	trace  strings.Builder
	rounds []RoundInfo
}

// RoundInfo is the debug view of one dce.Round.
type RoundInfo struct {
	Index   int
	Sweeps  int      // liveness sweeps until the sets settled
	Removed []string // removed instructions, formatted
}

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Options returns dce options that feed this collector.
func (c *Collector) Options() dce.Options {
	return dce.Options{
		Trace:   &c.trace,
		OnRound: c.recordRound,
	}
}

func (c *Collector) recordRound(r dce.Round) {
	info := RoundInfo{Index: r.Index, Sweeps: r.Live.Sweeps()}
	for _, v := range r.Removed {
		info.Removed = append(info.Removed, r.Func.Format(v))
	}
	c.rounds = append(c.rounds, info)
}

// Trace returns the liveness trace of the first round.
func (c *Collector) Trace() string { return c.trace.String() }

// Rounds returns the recorded rounds in order.
func (c *Collector) Rounds() []RoundInfo { return c.rounds }
