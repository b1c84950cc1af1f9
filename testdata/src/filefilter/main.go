// Package filefilter tests file filtering functionality.
// Tests that:
// - Generated files are always skipped (see generated.go)
// - Test files are analyzed by default (see code_test.go)
package filefilter

func deadInSource(a, b int) {
	_ = a + b // want `result of \+ is never used`
}

func liveInSource(a, b int) int {
	return a + b
}
