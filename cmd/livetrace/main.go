// Command livetrace prints the liveness trace of Go functions.
//
// For every function matching -run, livetrace converts the go/ssa form into
// the dead code IR and runs elimination to the fixed point. The IN set of
// each instruction in the first round is printed one per line, followed by
// an empty set line. With -dump, the pruned IR is printed as well.
//
// Usage:
//
//	livetrace [-run regexp] [-dump] [packages]
package main

import (
	"cmp"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/mpyw/livedce/internal/dce"
	"github.com/mpyw/livedce/internal/ir"
	livessa "github.com/mpyw/livedce/internal/ssa"
)

func main() {
	run := flag.String("run", "", "only trace functions whose name matches this regexp")
	dump := flag.Bool("dump", false, "print the IR after elimination")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: livetrace [-run regexp] [-dump] [packages]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	if err := trace(os.Stdout, patterns, *run, *dump); err != nil {
		fmt.Fprintf(os.Stderr, "livetrace: %v\n", err)
		os.Exit(1)
	}
}

func trace(w io.Writer, patterns []string, run string, dump bool) error {
	filter, err := regexp.Compile(run)
	if err != nil {
		return fmt.Errorf("invalid -run: %w", err)
	}

	cfg := &packages.Config{Mode: packages.LoadAllSyntax}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return err
	}
	if packages.PrintErrors(pkgs) > 0 {
		return fmt.Errorf("packages contain errors")
	}

	prog, ssaPkgs := ssautil.Packages(pkgs, 0)
	prog.Build()

	for _, fn := range sourceFuncs(prog, ssaPkgs) {
		if !filter.MatchString(fn.String()) {
			continue
		}
		if err := traceFunc(w, fn, dump); err != nil {
			return err
		}
	}
	return nil
}

// sourceFuncs returns the functions declared in pkgs, closures included, in
// source order.
func sourceFuncs(prog *ssa.Program, pkgs []*ssa.Package) []*ssa.Function {
	wanted := make(map[*ssa.Package]bool, len(pkgs))
	for _, p := range pkgs {
		if p != nil {
			wanted[p] = true
		}
	}

	var fns []*ssa.Function
	for fn := range ssautil.AllFunctions(prog) {
		if fn.Synthetic != "" || fn.Blocks == nil || !wanted[fn.Pkg] {
			continue
		}
		fns = append(fns, fn)
	}
	slices.SortFunc(fns, func(a, b *ssa.Function) int {
		return cmp.Or(
			cmp.Compare(a.Pkg.Pkg.Path(), b.Pkg.Pkg.Path()),
			cmp.Compare(a.Pos(), b.Pos()),
		)
	})
	return fns
}

func traceFunc(w io.Writer, fn *ssa.Function, dump bool) error {
	conv, err := livessa.Convert(fn)
	if err != nil {
		// Not every function can be converted; say so and move on.
		_, err := fmt.Fprintf(w, "# %s: skipped: %v\n\n", fn, err)
		return err
	}

	if _, err := fmt.Fprintf(w, "# %s\n", fn); err != nil {
		return err
	}
	res := dce.Run(conv.Func, dce.Options{Trace: w})
	if res.TraceErr != nil {
		return res.TraceErr
	}
	if _, err := fmt.Fprintf(w, "# %d removed in %d rounds\n\n", len(res.Removed), res.Rounds); err != nil {
		return err
	}

	if dump {
		if err := ir.Fprint(w, conv.Func); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
