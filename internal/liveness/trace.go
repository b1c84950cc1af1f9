package liveness

import (
	"io"
	"strings"

	"github.com/mpyw/livedce/internal/ir"
)

// WriteTrace writes the IN set of every non-join instruction of fn, one per
// line in program order, followed by an empty set line and a blank line:
//
//	{%a,%b}
//	{%x,%c}
//	{%y}
//	{}
func WriteTrace(w io.Writer, fn *ir.Func, res *Result) error {
	var sb strings.Builder
	for _, b := range fn.Blocks() {
		for _, v := range fn.Instrs(b) {
			if fn.IsJoin(v) {
				continue
			}
			sb.WriteString(res.In(v).Format(fn))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("{}\n\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
