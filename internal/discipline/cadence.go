package discipline

// Cadence spreads the long/short period alternation evenly across a
// Denom-length window rather than front-loading all the long periods
// (spec §9: "Do not implement as 'first k periods long, rest short' -
// both yield the same average but the per-period variance differs").
type Cadence struct {
	counter uint8
}

// Next returns the number of raw cycles the next period should use,
// given the current Params, and advances the internal counter.
func (c *Cadence) Next(p Params) uint32 {
	long := c.counter < p.Frac
	c.counter = uint8((uint16(c.counter) + 1) % Denom)
	if long {
		return uint32(p.Whole) + 1
	}
	return uint32(p.Whole)
}

// Reset restarts the cadence counter at 0. Not required between normal
// Params updates; useful when a tick source is reprogrammed from cold
// start.
func (c *Cadence) Reset() {
	c.counter = 0
}
