package livedce_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/mpyw/livedce"
)

// BenchmarkAnalyzer benchmarks the analyzer on test fixtures.
func BenchmarkAnalyzer(b *testing.B) {
	testdata := analysistest.TestData()

	b.Run("Fixtures", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			analysistest.Run(b, testdata, livedce.Analyzer, "livedce")
		}
	})
}

// BenchmarkAnalyzerSmall benchmarks on minimal code.
func BenchmarkAnalyzerSmall(b *testing.B) {
	testdata := analysistest.TestData()

	b.Run("SingleFile", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			analysistest.Run(b, testdata, livedce.Analyzer, "fix")
		}
	})
}
