package liveness

import (
	"math/bits"
	"strings"

	"github.com/mpyw/livedce/internal/ir"
)

// Set is a set of values of one function, stored as a bitset over the value
// arena. The zero Set is empty.
type Set struct {
	words []uint64
}

func newSet(n int) Set {
	return Set{words: make([]uint64, (n+63)/64)}
}

// Has reports whether v is in s.
func (s Set) Has(v ir.Value) bool {
	i := int(v) / 64
	if v < 0 || i >= len(s.words) {
		return false
	}
	return s.words[i]&(1<<(uint(v)%64)) != 0
}

// Len returns the number of values in s.
func (s Set) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Values returns the members of s in handle order, which is definition order.
func (s Set) Values() []ir.Value {
	var vs []ir.Value
	for i, w := range s.words {
		for w != 0 {
			t := bits.TrailingZeros64(w)
			vs = append(vs, ir.Value(i*64+t))
			w &^= 1 << uint(t)
		}
	}
	return vs
}

// Equal reports whether s and t have the same members.
func (s Set) Equal(t Set) bool {
	n := max(len(s.words), len(t.words))
	for i := 0; i < n; i++ {
		if word(s, i) != word(t, i) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every member of s is in t.
func (s Set) SubsetOf(t Set) bool {
	for i, w := range s.words {
		if w&^word(t, i) != 0 {
			return false
		}
	}
	return true
}

// Format renders s as "{%a,%b}" using fn's operand names.
func (s Set) Format(fn *ir.Func) string {
	vs := s.Values()
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = fn.Operand(v)
	}
	return "{" + strings.Join(names, ",") + "}"
}

func word(s Set, i int) uint64 {
	if i < len(s.words) {
		return s.words[i]
	}
	return 0
}

func (s Set) add(v ir.Value) {
	s.words[int(v)/64] |= 1 << (uint(v) % 64)
}

func (s Set) remove(v ir.Value) {
	s.words[int(v)/64] &^= 1 << (uint(v) % 64)
}

func (s Set) clear() {
	clear(s.words)
}

func (s Set) copyFrom(t Set) {
	copy(s.words, t.words)
}

func (s Set) unionWith(t Set) {
	for i, w := range t.words {
		s.words[i] |= w
	}
}
