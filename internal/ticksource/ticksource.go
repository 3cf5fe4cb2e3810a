// Package ticksource defines the narrow interface the core depends on
// for its hardware tick interrupt (spec §4.L), and the callback type an
// ISR-context adapter invokes once per tick.
package ticksource

// Callback is invoked in interrupt context once per tick. Spec §4.L:
// "strict bounds on execution time - well under one tick period." It
// must not block or allocate in a way that could stall the interrupt.
type Callback func()

// Source is a reconfigurable tick generator: set_period / callback
// registration, hidden behind an interface so the core can be driven
// by a simulated clock in tests (spec §9).
type Source interface {
	// SetPeriod reprograms the next period using a fractional-divider
	// target: wholeCycles raw cycles for "short" periods, wholeCycles+1
	// for "long" periods, alternated fracNum times out of fracDenom per
	// window. The concrete source must deliver this cadence exactly,
	// with no long-run drift from rounding (spec §4.L).
	SetPeriod(wholeCycles uint32, fracNum, fracDenom uint8) error

	// OnTick registers the callback invoked once per tick. Replacing a
	// previously registered callback is implementation-defined; callers
	// should register exactly once before starting the source.
	OnTick(cb Callback)

	// Start begins delivering ticks. Stop halts delivery; both are
	// idempotent.
	Start() error
	Stop() error
}
