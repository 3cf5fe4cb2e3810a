// Package discipline implements the fractional-divider clock discipline
// loop: the rational tick period the receiver maintains and adjusts
// from observed symbol-arrival drift.
package discipline

// Denom is the fixed power-of-two sub-cycle resolution (spec §3/§6).
// v2 calibration records use this denominator; v1 records (Denom=16)
// are converted on load (see internal/calibration).
const Denom = 64

// Default nominal period, expressed as (whole, frac) per spec §6's
// configuration surface (NOMINAL_WHOLE, NOMINAL_FRAC). Concrete values
// depend on the hardware tick source's base clock; these are sized for a
// 2MHz timer clock divided down to 60Hz (2_000_000/60 = 33_333.33
// cycles/tick), which keeps Whole within its 16-bit range.
// internal/config copies these values; it does not override them.
const (
	NominalWhole uint16 = 33333
	NominalFrac  uint8  = 21 // 0.333.. * 64 rounded
)

// toleranceNumerator/Denominator bound scaled to nominal ± 5% (spec §8
// invariant 5, spec §4.H "Bounds").
const (
	toleranceNumerator   = 5
	toleranceDenominator = 100
)

// Params is (whole_cycles, frac_numerator) interpreted as a rational
// tick period: scaled = whole*Denom + frac is the period in raw cycles
// scaled by Denom.
type Params struct {
	Whole uint16
	Frac  uint8
}

// Nominal returns the compile-time default period.
func Nominal() Params {
	return Params{Whole: NominalWhole, Frac: NominalFrac}
}

// Scaled returns whole*Denom + frac.
func (p Params) Scaled() uint64 {
	return uint64(p.Whole)*Denom + uint64(p.Frac)
}

// FromScaled decomposes a scaled value back into (whole, frac) by
// integer divide/mod by Denom.
func FromScaled(scaled uint64) Params {
	return Params{
		Whole: uint16(scaled / Denom),
		Frac:  uint8(scaled % Denom),
	}
}

func nominalScaled() uint64 {
	return Nominal().Scaled()
}

func clampToTolerance(scaled uint64) uint64 {
	nominal := nominalScaled()
	lo := nominal - nominal*toleranceNumerator/toleranceDenominator
	hi := nominal + nominal*toleranceNumerator/toleranceDenominator
	if scaled < lo {
		return lo
	}
	if scaled > hi {
		return hi
	}
	return scaled
}

// Adjust updates params so the next interval matches the observed
// ratio of localTicks (what the local clock counted) to apparentTicks
// (what those ticks should have been per the reference, i.e.
// localTicks - accumulatedOffset). apparentTicks < localTicks means the
// local clock is running fast: the period is too small, so scaled must
// increase.
//
// newScaled = MulDiv(scaled, localTicks, apparentTicks), then a
// half-and-half low-pass against the previous scaled value (spec §9:
// "a single noisy measurement should not overwrite calibration"),
// finally clamped to within ±5% of nominal.
func Adjust(current Params, localTicks, apparentTicks uint64) Params {
	if apparentTicks == 0 {
		return current
	}
	scaled := current.Scaled()
	newScaled := MulDiv(scaled, localTicks, apparentTicks)
	filtered := (newScaled + scaled) / 2
	return FromScaled(clampToTolerance(filtered))
}
