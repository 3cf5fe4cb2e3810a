// Package receiver wires components A through E, G, and I into the
// per-tick orchestration spec §4.K describes, and owns the
// single-producer/single-consumer flags spec §5 assigns to the tick
// context versus the main loop.
package receiver

import (
	"sync/atomic"

	"github.com/kf0wwv/wwvbrx/internal/acquisition"
	"github.com/kf0wwv/wwvbrx/internal/bitreg"
	"github.com/kf0wwv/wwvbrx/internal/correlate"
	"github.com/kf0wwv/wwvbrx/internal/diag"
	"github.com/kf0wwv/wwvbrx/internal/discipline"
	"github.com/kf0wwv/wwvbrx/internal/frame"
	"github.com/kf0wwv/wwvbrx/internal/inputsource"
	"github.com/kf0wwv/wwvbrx/internal/scoreboard"
	"github.com/kf0wwv/wwvbrx/internal/symbol"
	"github.com/kf0wwv/wwvbrx/internal/ticksource"
	"github.com/kf0wwv/wwvbrx/internal/timeofday"
)

// Flags are the edge signals spec §5 assigns single-producer (tick ctx,
// sets true) / single-consumer (main loop, reads and clears)
// discipline. All fields are accessed only through the atomic-bool
// helpers below: a plain bool would be a torn/racy read across the
// interrupt boundary.
type flag struct{ v atomic.Bool }

func (f *flag) set()          { f.v.Store(true) }
func (f *flag) consume() bool { return f.v.CompareAndSwap(true, false) }

// Device is the single value spec §9 asks for ("wrap all core state in
// a single device value, pass references explicitly") instead of
// package-level globals.
type Device struct {
	input inputsource.BitReader
	log   *diag.Logger

	register bitreg.Register
	zero     scoreboard.Board
	one      scoreboard.Board
	marker   scoreboard.Board
	stream   *frame.Stream
	tracker  *acquisition.Tracker
	clock    timeofday.TimeOfDay

	ticksSinceSync          uint64
	ticksSinceParameterSave uint64

	validFrame          flag
	secondChanged       flag
	minuteChanged       flag
	paramsUnsaved       flag
	needsUIRefresh      flag
	tickIntervalChanged flag

	// lastFields holds the most recently decoded frame, snapshotted for
	// the main loop under DecodedFrame(); written only by the tick ctx.
	lastFieldsValue atomic.Value // frame.Fields
}

// New constructs a Device with the given initial calibration (from
// internal/calibration.Load) and acquisition thresholds.
func New(input inputsource.BitReader, initial discipline.Params, acqCfg acquisition.Config, log *diag.Logger) *Device {
	d := &Device{
		input:   input,
		log:     log,
		stream:  frame.NewStream(),
		tracker: acquisition.NewTracker(acqCfg, initial),
	}
	return d
}

// Tick is the ISR body, spec §4.K's seven steps in order. It never
// blocks, never touches persistence or UI rendering, and is not
// re-entrant. The caller (a ticksource.Source adapter) must serialize
// calls.
func (d *Device) Tick() {
	bit, err := d.input.ReadBit()
	if err != nil {
		// Spurious input fault: spec §7 treats noise as locally
		// absorbed. Substitute 0 and continue; the correlator's
		// threshold design tolerates occasional bad samples.
		bit = 0
	}

	d.register.Shift(bit)

	scores := correlate.ScoreAll(d.register.Bytes10())
	d.zero.Shift(scores.Zero)
	d.one.Shift(scores.One)
	d.marker.Shift(scores.Marker)

	d.ticksSinceSync++
	d.ticksSinceParameterSave++

	boards := symbol.Boards{Zero: &d.zero, One: &d.one, Marker: &d.marker}
	outcome := d.tracker.Tick(boards, d.stream)

	if outcome.StateChanged {
		d.ticksSinceSync = 0
		d.needsUIRefresh.set()
	}
	if outcome.PersistRequest {
		d.paramsUnsaved.set()
	}
	if outcome.DisciplineFired {
		d.tickIntervalChanged.set()
	}

	// Only a tick that just shifted a detected symbol into the stream can
	// complete a frame; the stream then stays valid until the next shift,
	// so checking on every tick would decode the same frame repeatedly.
	if outcome.Detected && d.stream.ValidFrame() {
		// The closing marker is detected 15 ticks after its 60-tick
		// window ends (10 ticks of next-symbol context in the
		// templates plus 5 ticks to reach the scoreboard center).
		// frame.Decode applies latency only in whole minutes, so 0 is
		// passed here.
		fields := frame.Decode(d.stream, 0)
		d.clock.SetFromFrame(fields.Minutes, fields.Hours, fields.DayOfYear, fields.YearTwoDigit, fields.LeapYear)
		d.lastFieldsValue.Store(fields)
		d.validFrame.set()
	}

	d.clock.Tick()
	if d.clock.SecondChanged {
		d.secondChanged.set()
	}
	if d.clock.MinuteChanged {
		d.minuteChanged.set()
	}

	d.needsUIRefresh.set()
}

// OnTick returns a ticksource.Callback bound to this device, for
// registration with a ticksource.Source.
func (d *Device) OnTick() ticksource.Callback {
	return d.Tick
}

// State returns the current acquisition state.
func (d *Device) State() acquisition.State { return d.tracker.State() }

// ClockParams returns the current disciplined clock params.
func (d *Device) ClockParams() discipline.Params { return d.tracker.Params() }

// TimeOfDay returns a snapshot of the current time-of-day fields. Safe
// to call from the main loop: spec §5 allows staleness by one tick for
// coarse reads like this.
func (d *Device) TimeOfDay() timeofday.TimeOfDay { return d.clock }

// DecodedFrame returns the most recently decoded frame fields, if any.
func (d *Device) DecodedFrame() (frame.Fields, bool) {
	v := d.lastFieldsValue.Load()
	if v == nil {
		return frame.Fields{}, false
	}
	return v.(frame.Fields), true
}

// ConsumeValidFrame reports and clears the valid-frame flag.
func (d *Device) ConsumeValidFrame() bool { return d.validFrame.consume() }

// ConsumeSecondChanged reports and clears the second-changed flag.
func (d *Device) ConsumeSecondChanged() bool { return d.secondChanged.consume() }

// ConsumeMinuteChanged reports and clears the minute-changed flag.
func (d *Device) ConsumeMinuteChanged() bool { return d.minuteChanged.consume() }

// ConsumeParamsUnsaved reports and clears the params-unsaved flag. The
// main loop should persist calibration on a true return.
func (d *Device) ConsumeParamsUnsaved() bool { return d.paramsUnsaved.consume() }

// ConsumeNeedsUIRefresh reports and clears the UI-refresh flag.
func (d *Device) ConsumeNeedsUIRefresh() bool { return d.needsUIRefresh.consume() }

// ConsumeTickIntervalChanged reports and clears the tick-interval
// flag. The main loop should reprogram the ticksource.Source on true.
func (d *Device) ConsumeTickIntervalChanged() bool { return d.tickIntervalChanged.consume() }
