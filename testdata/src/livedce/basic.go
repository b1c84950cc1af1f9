// Package livedce holds fixtures for the livedce analyzer.
package livedce

// ===== SHOULD REPORT =====

func deadAdd(a, b int) int {
	_ = a + b // want `result of \+ is never used`
	return a
}

// deadChain needs three rounds: each removal leaves its operand dead.
func deadChain(a, b, c int) int {
	x := a + b // want `result of \+ is never used`
	y := x * c // want `result of \* is never used`
	_ = y - a  // want `result of - is never used`
	return a
}

func deadConstDivisor(a int) {
	_ = a / 2  // want `result of / is never used`
	_ = a % 3  // want `result of % is never used`
	_ = a << 2 // want `result of << is never used`
}

func deadBranches(a, b int, cond bool) int {
	var x int
	if cond {
		x = a + b // want `result of \+ is never used`
	} else {
		x = a - b // want `result of - is never used`
	}
	_ = x
	return a
}

func deadLogical(p, q bool) {
	_ = p && q // want `result of && is never used`
	_ = p || q // want `result of \|\| is never used`
}

func deadNegation(a int, p bool) {
	_ = -a // want `result of unary - is never used`
	_ = !p // want `result of unary ! is never used`
}

func deadConversion(a int) {
	_ = float64(a) // want `conversion is never used`
}

type point struct{ x, y int }

func makePoint(x, y int) point { return point{x, y} }

func deadField(a int) {
	_ = makePoint(a, a).x // want `field selection is never used`
}

func deadLookup(m map[string]int) {
	_ = m["k"] // want `map lookup is never used`
}

func deadAssert(x any) {
	_, _ = x.(int) // want `type assertion is never used`
}

// ===== SHOULD NOT REPORT =====

func liveChain(a, b, c int) int {
	x := a + b
	y := x * c
	return y
}

// liveJoin keeps both incoming values: each is live out of its own branch.
func liveJoin(a, b int, cond bool) int {
	var x int
	if cond {
		x = a + b
	} else {
		x = a - b
	}
	return x
}

func liveLoop(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += i
	}
	return sum
}

// deadCycle is not reported: the join and the addition keep each other live
// around the back edge.
func deadCycle(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += i
	}
	_ = sum
	return n
}

func compute(a int) int { return a }

func sideEffects(a, b int, s []int, p *int, m map[string]int, ch chan int) {
	_ = compute(a) // call
	_ = a / b      // may divide by zero
	_ = a << b     // may shift by a negative amount
	_ = s[a]       // may be out of range
	_ = *p         // may be nil
	m["k"] = a     // store
	_ = <-ch       // blocks
}

func interfaceCompare(x, y any) {
	_ = x == y // may panic on uncomparable dynamic types
}

func floatDivision(x, y float64) {
	_ = x / y // want `result of / is never used`
}

// fallthroughIntoCase is not reported: both targets of the "case 2" test are
// the same body, so the comparison is never branched on.
func fallthroughIntoCase(a int) int {
	switch a {
	case 1:
		return 10
	default:
		fallthrough
	case 2:
		return 20
	}
}
