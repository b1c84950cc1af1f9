// Command gengolden generates golden files for suggested fixes tests.
//
// Run it from the repository root:
//
//	go run ./testdata/cmd/gengolden
package main

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/mpyw/livedce"
)

// fixturePackages are the testdata packages checked with RunWithSuggestedFixes.
var fixturePackages = []string{"fix"}

func main() {
	testdata := analysistest.TestData()

	for _, pkg := range fixturePackages {
		files, err := filepath.Glob(filepath.Join(testdata, "src", pkg, "*.go"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for _, file := range files {
			fmt.Printf("Generating golden for %s...\n", filepath.Base(file))

			if err := generateGoldenFile(testdata, pkg, file); err != nil {
				fmt.Printf("  Error: %v\n", err)
				continue
			}

			fmt.Printf("  Created %s.golden\n", filepath.Base(file))
		}
	}
}

func generateGoldenFile(testdata, pkg, srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	results := analysistest.Run(&noopT{}, testdata, livedce.Analyzer, pkg)

	type offsetEdit struct {
		start   int
		end     int
		newText string
	}
	var edits []offsetEdit
	seen := make(map[offsetEdit]bool)

	// The same file shows up once per package variant; count each edit once.
	for _, result := range results {
		fset := result.Pass.Fset
		for _, diag := range result.Diagnostics {
			for _, fix := range diag.SuggestedFixes {
				for _, edit := range fix.TextEdits {
					if fset.Position(edit.Pos).Filename != srcPath {
						continue
					}
					e := offsetEdit{
						start:   fset.Position(edit.Pos).Offset,
						end:     fset.Position(edit.End).Offset,
						newText: string(edit.NewText),
					}
					if !seen[e] {
						seen[e] = true
						edits = append(edits, e)
					}
				}
			}
		}
	}

	if len(edits) == 0 {
		return fmt.Errorf("no suggested fixes")
	}

	// Apply edits (in reverse order to maintain offsets)
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})

	result := content
	for _, e := range edits {
		result = append(result[:e.start], append([]byte(e.newText), result[e.end:]...)...)
	}

	formatted, err := format.Source(result)
	if err != nil {
		return fmt.Errorf("formatting fixed source: %w", err)
	}

	return os.WriteFile(srcPath+".golden", formatted, 0644)
}

type noopT struct{}

func (t *noopT) Errorf(format string, args ...interface{}) {}
