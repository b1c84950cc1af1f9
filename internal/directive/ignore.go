package directive

import (
	"go/ast"
	"go/token"
	"slices"
)

// fileLevel is the IgnoreMap key of a file-level ignore.
const fileLevel = -1

type ignoreEntry struct {
	pos  token.Pos
	used bool
}

// IgnoreMap tracks the lines of one file that carry ignore directives.
type IgnoreMap map[int]*ignoreEntry

// BuildIgnoreMap scans a file for ignore comments.
//
// Example:
//
//	//livedce:ignore          // Line 5 → map[5]
//	_ = a + b                 // Line 6 → ignored (line 5 covers line 6)
//
//	// livedce:ignore         // in the package doc → map[-1]
//	package main              // every line ignored
//
// File-level entries start out used: they never produce an
// "unused directive" report.
func BuildIgnoreMap(fset *token.FileSet, file *ast.File) IgnoreMap {
	m := make(IgnoreMap)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if IsIgnoreDirective(c.Text) {
				m[fset.Position(c.Pos()).Line] = &ignoreEntry{pos: c.Pos()}
			}
		}
	}

	if file.Doc != nil {
		for _, c := range file.Doc.List {
			if IsIgnoreDirective(c.Text) {
				// The doc comment line itself is not a line-level directive.
				delete(m, fset.Position(c.Pos()).Line)
				m[fileLevel] = &ignoreEntry{pos: c.Pos(), used: true}
			}
		}
	}

	return m
}

// ShouldIgnore reports whether a finding on line is suppressed, either by a
// file-level directive or by a directive on the same or the previous line.
// The matching entry is marked used.
func (m IgnoreMap) ShouldIgnore(line int) bool {
	for _, l := range [...]int{fileLevel, line, line - 1} {
		if entry, ok := m[l]; ok {
			entry.used = true
			return true
		}
	}
	return false
}

// MarkUsed marks the directive at line as used.
func (m IgnoreMap) MarkUsed(line int) {
	if entry, ok := m[line]; ok {
		entry.used = true
	}
}

// UnusedIgnores returns the positions of line-level directives that never
// suppressed anything, in source order.
func (m IgnoreMap) UnusedIgnores() []token.Pos {
	var unused []token.Pos
	for line, entry := range m {
		if line != fileLevel && !entry.used {
			unused = append(unused, entry.pos)
		}
	}
	slices.Sort(unused)
	return unused
}

// FunctionIgnoreEntry is a function-level ignore directive.
type FunctionIgnoreEntry struct {
	DirectiveLine int
}

// BuildFunctionIgnoreSet returns the functions of file whose doc comment
// carries an ignore directive, keyed by the position of the function name
// (which is what ssa.Function.Pos reports).
func BuildFunctionIgnoreSet(fset *token.FileSet, file *ast.File) map[token.Pos]FunctionIgnoreEntry {
	result := make(map[token.Pos]FunctionIgnoreEntry)

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if IsIgnoreDirective(c.Text) {
				result[fd.Name.Pos()] = FunctionIgnoreEntry{
					DirectiveLine: fset.Position(c.Pos()).Line,
				}
				break
			}
		}
	}

	return result
}
