package filefilter

// deadInTest is reported when -test=true (default).
func deadInTest(a, b int) {
	_ = a * b // want `result of \* is never used`
}
