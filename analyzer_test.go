package livedce_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/mpyw/livedce"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, livedce.Analyzer, "livedce")
}

func TestFileFilter(t *testing.T) {
	testdata := analysistest.TestData()
	// Tests that generated files are skipped
	analysistest.Run(t, testdata, livedce.Analyzer, "filefilter")
}

func TestSuggestedFixes(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.RunWithSuggestedFixes(t, testdata, livedce.Analyzer, "fix")
}

func TestInvalidDebugFilter(t *testing.T) {
	testdata := analysistest.TestData()

	if err := livedce.Analyzer.Flags.Set("debugfunc", "("); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = livedce.Analyzer.Flags.Set("debugfunc", "") })

	results := analysistest.Run(&noopT{T: t}, testdata, livedce.Analyzer, "filefilter")

	found := false
	for _, result := range results {
		for _, diag := range result.Diagnostics {
			if strings.HasPrefix(diag.Message, "invalid debug filter regex") {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected an invalid debug filter diagnostic")
	}
}

func TestDebugOutput(t *testing.T) {
	testdata := analysistest.TestData()

	if err := livedce.Analyzer.Flags.Set("debugfunc", `deadInSource$`); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = livedce.Analyzer.Flags.Set("debugfunc", "") })

	out, err := os.Create(filepath.Join(t.TempDir(), "stderr"))
	if err != nil {
		t.Fatal(err)
	}
	stderr := os.Stderr
	os.Stderr = out
	analysistest.Run(t, testdata, livedce.Analyzer, "filefilter")
	os.Stderr = stderr
	_ = out.Close()

	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{
		"=== Debug output for filefilter.deadInSource ===",
		"Liveness (round 1):",
		"Round 1: removed 1",
		"= add %a, %b",
		"Round 2: removed 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("debug output lacks %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "liveInSource") {
		t.Errorf("debug output includes a function the filter does not match:\n%s", got)
	}
}

func TestFlagsDoNotClashWithDriver(t *testing.T) {
	// Flags owned by the unitchecker and singlechecker drivers.
	driverFlags := []string{"V", "flags", "json", "c", "fix", "diff", "test", "debug", "cpuprofile", "memprofile", "trace"}

	fs := flag.NewFlagSet("livedce", flag.ContinueOnError)
	for _, name := range driverFlags {
		fs.String(name, "", "driver flag")
	}
	livedce.Analyzer.Flags.VisitAll(func(f *flag.Flag) {
		if fs.Lookup(f.Name) != nil {
			t.Errorf("analyzer flag -%s would conflict with the driver", f.Name)
			return
		}
		fs.Var(f.Value, f.Name, f.Usage)
	})
	t.Cleanup(func() { _ = livedce.Analyzer.Flags.Set("debugfunc", "") })

	if err := fs.Parse([]string{"-debug=v", `-debugfunc=pkg\.Handler$`, "./..."}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got, want := livedce.Analyzer.Flags.Lookup("debugfunc").Value.String(), `pkg\.Handler$`; got != want {
		t.Errorf("-debugfunc = %q, want %q", got, want)
	}
	if got := fs.Lookup("debug").Value.String(); got != "v" {
		t.Errorf("driver -debug = %q, want %q", got, "v")
	}
}

// noopT wraps testing.T to suppress errors during result collection.
// This allows us to run the analyzer without failing on diagnostics
// that no want comment expects.
type noopT struct {
	*testing.T
}

// Override error methods to be no-ops
func (n *noopT) Errorf(format string, args ...interface{}) {}
func (n *noopT) Error(args ...interface{})                 {}
func (n *noopT) Fatal(args ...interface{})                 {}
func (n *noopT) Fatalf(format string, args ...interface{}) {}
