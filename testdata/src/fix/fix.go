// Package fix holds fixtures for the "Remove unused computation" fix.
package fix

func blank(a, b int) {
	_ = a + b // want `result of \+ is never used`
}

func operandStillUsed(a, b, c int) int {
	x := a + b
	_ = x * c // want `result of \* is never used`
	return x
}

// operandNotUsedElsewhere gets no fix: deleting the statement would leave x
// declared and not used.
func operandNotUsedElsewhere(a, b int) {
	x := a + b // want `result of \+ is never used`
	_ = x * 2  // want `result of \* is never used`
}

// sameStatement reports twice but deletes once.
func sameStatement(a, b, c int) {
	_ = a + b*c // want `result of \+ is never used` `result of \* is never used`
}

func inCase(a, b, k int) int {
	switch k {
	case 1:
		_ = a - b // want `result of - is never used`
	}
	return k
}

func withCall(a int) {
	_ = double(a) + 1 // want `result of \+ is never used`
}

func double(a int) int { return a * 2 }
