package livedce

func closure(a, b int) func() int {
	return func() int {
		_ = a * b // want `result of \* is never used`
		return a
	}
}

// deadClosure loses its closure value, but go/ssa gives function literal
// closures no position, so there is nothing to report.
func deadClosure(a int) {
	f := func() int { return a }
	_ = f
}
