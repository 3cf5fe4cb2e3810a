package discipline

import "math/bits"

// MulDiv computes floor(a*b/c) without overflowing 64-bit intermediate
// arithmetic, using a 128-bit-wide multiply (math/bits.Mul64) and a
// 128-by-64 divide (math/bits.Div64). c must be nonzero, and the
// quotient must fit in 64 bits: bits.Div64 panics otherwise.
func MulDiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return lo / c
	}
	quo, _ := bits.Div64(hi, lo, c)
	return quo
}
