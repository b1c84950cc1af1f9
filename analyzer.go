// Package livedce provides a static analysis tool that reports computations
// whose results are never used.
//
// Every function is converted from go/ssa into a small arena IR, and dead
// instructions are deleted by backward liveness analysis, repeated until a
// round deletes nothing. Each deleted instruction that has a source position
// becomes a diagnostic:
//
//	_ = a + b   // result of + is never used
//
// Calls, stores and anything that may panic or block are never deleted.
package livedce

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"

	"github.com/mpyw/livedce/internal"
	"github.com/mpyw/livedce/internal/directive"
)

// Analyzer is the main analyzer for livedce.
var Analyzer = &analysis.Analyzer{
	Name:     "livedce",
	Doc:      "reports computations whose results are never used, found by SSA liveness analysis",
	Requires: []*analysis.Analyzer{buildssa.Analyzer},
	Run:      run,
}

var debugFilter string

func init() {
	Analyzer.Flags.StringVar(&debugFilter, "debugfunc", "", "print liveness traces and removals for functions matching this regexp")
}

func run(pass *analysis.Pass) (any, error) {
	ssaInfo := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	skipFiles := buildSkipFiles(pass)

	ignoreMaps := make(map[string]directive.IgnoreMap)
	funcIgnores := make(map[string]map[token.Pos]directive.FunctionIgnoreEntry)
	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = directive.BuildIgnoreMap(pass.Fset, file)
		funcIgnores[filename] = directive.BuildFunctionIgnoreSet(pass.Fset, file)
	}

	internal.RunSSA(pass, ssaInfo, ignoreMaps, funcIgnores, skipFiles, debugFilter)

	return nil, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		if ast.IsGenerated(file) {
			skipFiles[pass.Fset.Position(file.Pos()).Filename] = true
		}
	}

	return skipFiles
}
