// Package internal runs the dead code passes over every source function of a
// package and reports what they removed.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────────────────┐
//	│                         Analysis Flow                                    │
//	│                                                                          │
//	│   analyzer.go (public)                                                   │
//	│        │                                                                 │
//	│        ▼                                                                 │
//	│   internal/analyzer.go   ◀── You are here                                │
//	│   ┌─────────────────────────────────────────────────────────────────┐   │
//	│   │  RunSSA()                                                       │   │
//	│   │    │                                                            │   │
//	│   │    ├── Skip excluded files/functions                            │   │
//	│   │    ├── Run dead code elimination (ssa.Analyzer)                 │   │
//	│   │    ├── Apply ignore directives                                  │   │
//	│   │    └── Attach suggested fixes                                   │   │
//	│   └─────────────────────────────────────────────────────────────────┘   │
//	│        │                                                                 │
//	│        ▼                                                                 │
//	│   internal/ssa   →   internal/dce   →   internal/liveness               │
//	└─────────────────────────────────────────────────────────────────────────┘
package internal

import (
	"fmt"
	"go/token"
	"os"
	"regexp"
	"slices"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/livedce/internal/dce"
	"github.com/mpyw/livedce/internal/debug"
	"github.com/mpyw/livedce/internal/directive"
	"github.com/mpyw/livedce/internal/fix"
	livessa "github.com/mpyw/livedce/internal/ssa"
)

// =============================================================================
// Entry Point
// =============================================================================

// RunSSA reports the instructions dead code elimination removes from each
// source function of the package.
//
// Processing flow for each function:
//  1. Skip if file is excluded (generated files, etc.)
//  2. Skip if the function or an enclosing function has //livedce:ignore
//  3. Run elimination on a copy and collect findings
//  4. Report findings (unless suppressed by line-level ignore)
//  5. Report unused ignore directives
func RunSSA(
	pass *analysis.Pass,
	ssaInfo *buildssa.SSA,
	ignoreMaps map[string]directive.IgnoreMap,
	funcIgnores map[string]map[token.Pos]directive.FunctionIgnoreEntry,
	skipFiles map[string]bool,
	debugFilter string,
) {
	var debugFilterRegex *regexp.Regexp
	if debugFilter != "" {
		var err error
		debugFilterRegex, err = regexp.Compile(debugFilter)
		if err != nil {
			// Report regex error but continue analysis without debug mode
			pass.Reportf(token.NoPos, "invalid debug filter regex: %v", err)
			debugFilterRegex = nil
		}
	}

	reported := make(map[token.Pos]bool)
	suggestedEdits := make(map[editKey]bool)
	fixGen := fix.New(pass)

	for _, fn := range ssaInfo.SrcFuncs {
		pos := fn.Pos()
		if !pos.IsValid() {
			continue
		}

		filename := pass.Fset.Position(pos).Filename
		if skipFiles[filename] {
			continue
		}

		ignoreMap := ignoreMaps[filename]

		if entry, ignored := functionIgnore(fn, funcIgnores[filename]); ignored {
			if ignoreMap != nil {
				ignoreMap.MarkUsed(entry.DirectiveLine)
			}
			continue
		}

		chk := newChecker(pass, ignoreMap, debugFilterRegex, reported, suggestedEdits, fixGen)
		chk.checkFunction(fn)
	}

	filenames := make([]string, 0, len(ignoreMaps))
	for filename := range ignoreMaps {
		filenames = append(filenames, filename)
	}
	slices.Sort(filenames)
	for _, filename := range filenames {
		ignoreMap := ignoreMaps[filename]
		if ignoreMap == nil {
			continue
		}
		for _, pos := range ignoreMap.UnusedIgnores() {
			pass.Reportf(pos, "unused livedce:ignore directive")
		}
	}
}

// functionIgnore looks fn up in the function-level ignore set. Closures
// inherit the directive of the declaration they are nested in.
func functionIgnore(fn *ssa.Function, ignores map[token.Pos]directive.FunctionIgnoreEntry) (directive.FunctionIgnoreEntry, bool) {
	for f := fn; f != nil; f = f.Parent() {
		if entry, ok := ignores[f.Pos()]; ok {
			return entry, true
		}
	}
	return directive.FunctionIgnoreEntry{}, false
}

// =============================================================================
// SSA Checker
// =============================================================================

// editKey identifies a TextEdit for deduplication.
type editKey struct {
	pos     token.Pos
	end     token.Pos
	newText string
}

// checker wraps the elimination of one function with ignore directive
// handling.
//
// It ensures:
//   - Findings at the same position are only reported once
//   - Line-level ignore directives suppress findings
//   - The same edit is only suggested once
type checker struct {
	pass             *analysis.Pass
	ignoreMap        directive.IgnoreMap
	debugFilterRegex *regexp.Regexp // nil if disabled
	reported         map[token.Pos]bool
	suggestedEdits   map[editKey]bool
	fixGen           *fix.Generator
}

func newChecker(
	pass *analysis.Pass,
	ignoreMap directive.IgnoreMap,
	debugFilterRegex *regexp.Regexp,
	reported map[token.Pos]bool,
	suggestedEdits map[editKey]bool,
	fixGen *fix.Generator,
) *checker {
	return &checker{
		pass:             pass,
		ignoreMap:        ignoreMap,
		debugFilterRegex: debugFilterRegex,
		reported:         reported,
		suggestedEdits:   suggestedEdits,
		fixGen:           fixGen,
	}
}

// checkFunction runs elimination on a single function and reports findings.
func (c *checker) checkFunction(fn *ssa.Function) {
	debugMode := c.debugFilterRegex != nil && c.debugFilterRegex.MatchString(fn.String())

	var collector *debug.Collector
	var opts dce.Options
	if debugMode {
		collector = debug.NewCollector()
		opts = collector.Options()
	}

	findings, err := livessa.NewAnalyzer(fn).Analyze(opts)
	if err != nil {
		if debugMode {
			fmt.Fprintf(os.Stderr, "\n=== Debug output for %s ===\n  skipped: %v\n", fn.String(), err)
		}
		return
	}

	if debugMode {
		fmt.Fprint(os.Stderr, debug.FormatFunction(fn.String(), collector))
	}

	removed := make(map[ssa.Instruction]bool, len(findings))
	for _, f := range findings {
		removed[f.Instr] = true
	}
	for _, f := range findings {
		c.report(fn, f, removed)
	}
}

// report reports a finding if not ignored or already reported.
func (c *checker) report(fn *ssa.Function, f livessa.Finding, removed map[ssa.Instruction]bool) {
	if c.reported[f.Pos] {
		return
	}
	c.reported[f.Pos] = true

	line := c.pass.Fset.Position(f.Pos).Line
	if c.ignoreMap != nil && c.ignoreMap.ShouldIgnore(line) {
		return
	}

	diag := analysis.Diagnostic{
		Pos:     f.Pos,
		Message: f.Message,
	}
	if c.fixGen != nil {
		diag.SuggestedFixes = c.dedupeFixes(c.fixGen.Generate(fn, f.Pos, removed))
	}
	c.pass.Report(diag)
}

// dedupeFixes drops edits already suggested for an earlier finding. Two
// findings in the same statement share one deletion.
func (c *checker) dedupeFixes(fixes []analysis.SuggestedFix) []analysis.SuggestedFix {
	var out []analysis.SuggestedFix
	for _, sf := range fixes {
		var edits []analysis.TextEdit
		for _, edit := range sf.TextEdits {
			key := editKey{pos: edit.Pos, end: edit.End, newText: string(edit.NewText)}
			if c.suggestedEdits[key] {
				continue
			}
			c.suggestedEdits[key] = true
			edits = append(edits, edit)
		}
		if len(edits) > 0 {
			out = append(out, analysis.SuggestedFix{Message: sf.Message, TextEdits: edits})
		}
	}
	return out
}
