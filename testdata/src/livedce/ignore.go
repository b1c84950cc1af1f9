package livedce

func ignoredLines(a, b int) {
	//livedce:ignore
	_ = a + b
	_ = a - b //livedce:ignore kept for the debugger
}

//livedce:ignore
func ignoredFunc(a, b int) {
	_ = a * b
	f := func() int {
		_ = a + b
		return a
	}
	_ = f
}

func unusedDirective(a int) int {
	//livedce:ignore // want "unused livedce:ignore directive"
	return a
}
