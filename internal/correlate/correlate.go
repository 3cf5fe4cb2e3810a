// Package correlate scores the current sample register against the
// three fixed WWVB symbol templates: the number of matching bits out of
// 80, via byte-wise XOR and a popcount.
package correlate

import (
	"math/bits"

	"github.com/kf0wwv/wwvbrx/internal/bitreg"
)

// Score returns 80 - popcount(register XOR template), i.e. the count of
// matching bits between the current register contents and t. Range is
// [0, 80].
func Score(reg [bitreg.Bytes]byte, t Template) uint8 {
	var mismatches int
	for i := 0; i < bitreg.Bytes; i++ {
		mismatches += bits.OnesCount8(reg[i] ^ t[i])
	}
	return uint8(bitreg.Width - mismatches)
}

// Scores computes the ZERO, ONE, and MARKER scores in one pass over the
// register, which is how internal/receiver calls it once per tick.
type Scores struct {
	Zero, One, Marker uint8
}

func ScoreAll(reg [bitreg.Bytes]byte) Scores {
	return Scores{
		Zero:   Score(reg, Zero),
		One:    Score(reg, One),
		Marker: Score(reg, Marker),
	}
}
