// Command livedce reports computations whose results are never used.
//
// Usage:
//
//	livedce ./...
//
// Or as a vet tool:
//
//	go vet -vettool=$(which livedce) ./...
//
// Print the liveness trace and removals of selected functions:
//
//	livedce -debugfunc 'example\.com/pkg\.Handler' ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/livedce"
)

func main() {
	singlechecker.Main(livedce.Analyzer)
}
