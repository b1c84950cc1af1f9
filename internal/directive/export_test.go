package directive

import (
	"go/ast"
	"go/token"
	"slices"

	"github.com/google/go-cmp/cmp"
)

// Add inserts an entry the way BuildIgnoreMap would.
func (m IgnoreMap) Add(line int, pos token.Pos) {
	m[line] = &ignoreEntry{pos: pos, used: line == fileLevel}
}

var sortInts = cmp.Transformer("sort", func(in []int) []int {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
})

// identAt returns the name of the function declared at pos.
func identAt(file *ast.File, pos token.Pos) string {
	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Name.Pos() == pos {
			return fd.Name.Name
		}
	}
	return ""
}
