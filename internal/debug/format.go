package debug

import (
	"fmt"
	"strings"
)

// FormatFunction returns the debug report of one function. It starts with a
// newline, and a blank line precedes every round:
//
//	=== Debug output for example.f ===
//	  Liveness (round 1):
//	    {%a,%b}
//	    {}
//
//	  Round 1: removed 1 (2 sweeps)
//	    %t0 = add %a, %b
//
//	  Round 2: removed 0 (1 sweeps)
func FormatFunction(funcName string, c *Collector) string {
	if c == nil {
		return ""
	}

	var buf strings.Builder

	fmt.Fprintf(&buf, "\n=== Debug output for %s ===\n", funcName)

	if trace := c.Trace(); trace != "" {
		fmt.Fprintf(&buf, "  Liveness (round 1):\n")
		for _, line := range strings.Split(strings.TrimRight(trace, "\n"), "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(&buf, "    %s\n", line)
		}
	}

	for _, r := range c.Rounds() {
		fmt.Fprintf(&buf, "\n  Round %d: removed %d (%d sweeps)\n", r.Index, len(r.Removed), r.Sweeps)
		for _, instr := range r.Removed {
			fmt.Fprintf(&buf, "    %s\n", instr)
		}
	}

	return buf.String()
}
