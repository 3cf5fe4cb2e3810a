// Package gpioline drives the receiver from real GPIO lines via
// warthog618/go-gpiocdev: a demodulated-bit input line and a
// hardware-timer-free tick source built on the kernel's edge-event
// timestamps. Declared in the teacher's go.mod with no in-tree caller;
// this is the component that finally exercises it, standing in for the
// hardware GPIO access the teacher's cgo TNC code reaches via system
// calls this core avoids entirely.
package gpioline

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/kf0wwv/wwvbrx/internal/diag"
	"github.com/kf0wwv/wwvbrx/internal/discipline"
	"github.com/kf0wwv/wwvbrx/internal/ticksource"
)

// BaseClockHz is the assumed oscillator frequency internal/discipline's
// whole/frac counts cycles against (discipline.NominalWhole is sized for
// a 2MHz clock divided to 60Hz). TickOutput.Drive uses it to turn a
// Cadence's per-period cycle count into a wall-clock sleep, since this
// core has no way to step an output pin at the raw oscillator rate
// itself; jitter is bounded by host scheduling latency, not by this
// constant.
const BaseClockHz = 2_000_000

// BitLine reads the demodulated envelope from a single GPIO input line,
// implementing inputsource.BitReader.
type BitLine struct {
	line *gpiocdev.Line
}

// OpenBitLine requests offset on chip (e.g. "gpiochip0") as an input.
func OpenBitLine(chip string, offset int) (*BitLine, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsInput)
	if err != nil {
		return nil, fmt.Errorf("gpioline: requesting input line %s:%d: %w", chip, offset, err)
	}
	return &BitLine{line: line}, nil
}

// ReadBit implements inputsource.BitReader.
func (b *BitLine) ReadBit() (byte, error) {
	v, err := b.line.Value()
	if err != nil {
		return 0, fmt.Errorf("gpioline: reading line value: %w", err)
	}
	return byte(v), nil
}

// Close releases the line.
func (b *BitLine) Close() error {
	return b.line.Close()
}

// TickLine drives the orchestrator from a GPIO line carrying an external
// square-wave tick source (e.g. a PPS-derived 60Hz divider), rather than
// a free-running software timer. It implements ticksource.Source by
// registering a rising-edge event handler; SetPeriod is a no-op since
// the cadence is set externally by the hardware divider this line
// observes, with internal/discipline's Adjust output applied through a
// separate output line (see TickOutput) instead of by reprogramming this
// input.
type TickLine struct {
	chip   string
	offset int
	line   *gpiocdev.Line
	cb     ticksource.Callback
}

// OpenTickLine prepares (but does not yet request) offset on chip for
// edge-triggered tick delivery.
func OpenTickLine(chip string, offset int) *TickLine {
	return &TickLine{chip: chip, offset: offset}
}

func (t *TickLine) OnTick(cb ticksource.Callback) { t.cb = cb }

// SetPeriod is a no-op: this input line's cadence is set by external
// hardware, not by the receiver.
func (t *TickLine) SetPeriod(wholeCycles uint32, fracNum, fracDenom uint8) error {
	return nil
}

func (t *TickLine) Start() error {
	line, err := gpiocdev.RequestLine(t.chip, t.offset,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(t.handleEvent),
	)
	if err != nil {
		return fmt.Errorf("gpioline: requesting tick line %s:%d: %w", t.chip, t.offset, err)
	}
	t.line = line
	return nil
}

func (t *TickLine) handleEvent(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventRisingEdge {
		return
	}
	if t.cb != nil {
		t.cb()
	}
}

func (t *TickLine) Stop() error {
	if t.line == nil {
		return nil
	}
	err := t.line.Close()
	t.line = nil
	return err
}

// TickOutput drives a GPIO output line at the fractional-divider cadence
// internal/discipline computes, for hardware that derives its own tick
// from a divided output rather than observing an external reference
// directly. Reprogramming happens by toggling the line from a software
// discipline.Cadence, not by the kernel, so jitter bounds depend on the
// host's scheduling latency.
type TickOutput struct {
	line *gpiocdev.Line
}

// OpenTickOutput requests offset on chip as a low output.
func OpenTickOutput(chip string, offset int) (*TickOutput, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("gpioline: requesting output line %s:%d: %w", chip, offset, err)
	}
	return &TickOutput{line: line}, nil
}

// Pulse drives the line high then low, one tick's worth of output edge.
func (o *TickOutput) Pulse() error {
	if err := o.line.SetValue(1); err != nil {
		return fmt.Errorf("gpioline: setting output high: %w", err)
	}
	if err := o.line.SetValue(0); err != nil {
		return fmt.Errorf("gpioline: setting output low: %w", err)
	}
	return nil
}

// Close releases the line.
func (o *TickOutput) Close() error {
	return o.line.Close()
}

// Drive closes the H->L loop spec §2 describes: it pulses the line once
// per period, reading live (the disciplined discipline.Params, normally
// Device.ClockParams) fresh before every pulse and feeding it through
// cadence to decide that period's cycle count. Because live is read
// every period rather than once at startup, a discipline.Adjust result
// reprograms this output's cadence on the very next period, not only
// when some separate "reprogram" event fires. Runs until stop is
// closed; logs and returns if a pulse fails.
func (o *TickOutput) Drive(cadence *discipline.Cadence, live func() discipline.Params, log *diag.Logger, stop <-chan struct{}) {
	for {
		cycles := cadence.Next(live())
		d := time.Duration(cycles) * time.Second / BaseClockHz

		timer := time.NewTimer(d)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := o.Pulse(); err != nil {
			if log != nil {
				log.Error("tick output pulse failed, stopping discipline loop", "err", err)
			}
			return
		}
	}
}
