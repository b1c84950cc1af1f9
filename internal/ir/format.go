package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Operand returns the textual name of v as it appears in operand lists:
// "%name" for named parameters and instructions, "%<handle>" for unnamed
// ones, and the bare name for constants.
func (f *Func) Operand(v Value) string {
	if v < 0 || int(v) >= len(f.values) {
		return "%?"
	}
	d := &f.values[v]
	if d.kind == KindConst {
		return d.name
	}
	if d.name != "" {
		return "%" + d.name
	}
	return "%" + strconv.Itoa(int(v))
}

// Format renders a single instruction.
//
//	%x = add %a, %b
//	%z = phi [%x1, p1], [%x2, p2]
//	branch %c, then, else
func (f *Func) Format(v Value) string {
	if !f.IsInstr(v) {
		return f.Operand(v)
	}
	d := &f.values[v]
	var sb strings.Builder
	if d.op.Class() != ClassTerminator {
		sb.WriteString(f.Operand(v))
		sb.WriteString(" = ")
	}
	sb.WriteString(d.op.String())

	var parts []string
	for _, a := range d.args {
		parts = append(parts, f.Operand(a))
	}
	for _, e := range d.in {
		parts = append(parts, fmt.Sprintf("[%s, %s]", f.Operand(e.Value), f.blocks[e.Pred].name))
	}
	for _, s := range d.succs {
		parts = append(parts, f.blocks[s].name)
	}
	if len(parts) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(parts, ", "))
	}
	return sb.String()
}

// Fprint writes a listing of f to w.
func Fprint(w io.Writer, f *Func) error {
	var sb strings.Builder
	params := make([]string, len(f.params))
	for i, p := range f.params {
		params[i] = f.Operand(p)
	}
	fmt.Fprintf(&sb, "func %s(%s):\n", f.Name, strings.Join(params, ", "))
	for b := range f.blocks {
		fmt.Fprintf(&sb, "%s:\n", f.blocks[b].name)
		for _, v := range f.blocks[b].instrs {
			fmt.Fprintf(&sb, "\t%s\n", f.Format(v))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
