package discipline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMulDivExactScenario(t *testing.T) {
	got := MulDiv(2_133_332, 7_999, 8_000)
	assert.Equal(t, uint64(2_133_065), got)
}

func TestMulDivMatchesFloorDivision(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Uint32().Draw(rt, "a")
		b := rapid.Uint32().Draw(rt, "b")
		c := rapid.Uint32Range(1, 1<<32-1).Draw(rt, "c")

		got := MulDiv(uint64(a), uint64(b), uint64(c))
		want := (uint64(a) * uint64(b)) / uint64(c)
		if got != want {
			rt.Fatalf("MulDiv(%d,%d,%d) = %d, want %d", a, b, c, got, want)
		}
	})
}

func TestAdjustStaysWithinTolerance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		current := Nominal()
		local := rapid.Uint64Range(1, 1_000_000).Draw(rt, "local")
		drift := rapid.Int64Range(-1000, 1000).Draw(rt, "drift")

		apparent := int64(local) - drift
		if apparent <= 0 {
			return
		}

		updated := Adjust(current, local, uint64(apparent))
		nominal := nominalScaled()
		lo := nominal - nominal*toleranceNumerator/toleranceDenominator
		hi := nominal + nominal*toleranceNumerator/toleranceDenominator
		scaled := updated.Scaled()
		if scaled < lo || scaled > hi {
			rt.Fatalf("scaled %d outside tolerance [%d, %d]", scaled, lo, hi)
		}
	})
}

func TestAdjustDirectionOscillatorFast(t *testing.T) {
	// Local oscillator running fast means apparentTicks < localTicks;
	// scaled (period) should increase.
	current := Nominal()
	updated := Adjust(current, 100000, 99900)
	assert.Greater(t, updated.Scaled(), current.Scaled())
}

func TestAdjustDirectionOscillatorSlow(t *testing.T) {
	current := Nominal()
	updated := Adjust(current, 99900, 100000)
	assert.Less(t, updated.Scaled(), current.Scaled())
}

func TestCadenceLongShortBalance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		frac := rapid.Uint8Range(0, Denom-1).Draw(rt, "frac")
		p := Params{Whole: 1000, Frac: frac}

		var c Cadence
		long := 0
		for i := 0; i < Denom; i++ {
			cycles := c.Next(p)
			if cycles == uint32(p.Whole)+1 {
				long++
			}
		}
		if long != int(frac) {
			rt.Fatalf("got %d long periods in a %d-window, want %d", long, Denom, frac)
		}
	})
}

func TestFromScaledRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		whole := rapid.Uint16().Draw(rt, "whole")
		frac := rapid.Uint8Range(0, Denom-1).Draw(rt, "frac")
		p := Params{Whole: whole, Frac: frac}
		got := FromScaled(p.Scaled())
		if got != p {
			rt.Fatalf("round trip mismatch: %+v != %+v", got, p)
		}
	})
}
