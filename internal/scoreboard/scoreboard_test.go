package scoreboard

import (
	"testing"

	"pgregory.net/rapid"
)

func TestPeakCacheInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var b Board
		scores := rapid.SliceOfN(rapid.Uint8(), 1, 40).Draw(rt, "scores")
		for _, s := range scores {
			b.Shift(s)
		}

		value, index := b.Peak()
		if b.slots[index] != value {
			rt.Fatalf("peakIndex %d does not hold peakValue %d (holds %d)", index, value, b.slots[index])
		}
		for _, s := range b.slots {
			if s > value {
				rt.Fatalf("slot value %d exceeds cached peak %d", s, value)
			}
		}
	})
}

func TestMaxOverThreshold(t *testing.T) {
	var b Board
	for _, s := range []uint8{10, 20, 75, 30} {
		b.Shift(s)
	}
	// slots are now [30, 75, 20, 10, 0...] (slot 0 = most recent = 30)
	if _, _, ok := b.MaxOverThreshold(80); ok {
		t.Fatalf("expected no peak above 80")
	}
	value, index, ok := b.MaxOverThreshold(70)
	if !ok || value != 75 || index != 1 {
		t.Fatalf("got value=%d index=%d ok=%v, want 75,1,true", value, index, ok)
	}
}

func TestPeakInCenter(t *testing.T) {
	// After Len shifts, the value pushed in at iteration i ends up at
	// slot Len-1-i; push the peak value at the iteration that lands it
	// on the center slot.
	var b Board
	for i := 0; i < Len; i++ {
		var s uint8 = 1
		if i == Len-1-Center {
			s = 90
		}
		b.Shift(s)
	}
	if !b.PeakInCenter() {
		_, index := b.Peak()
		t.Fatalf("expected peak in center slot %d, got %d", Center, index)
	}
}
