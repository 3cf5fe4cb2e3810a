// Package simclock generates a synthetic WWVB bit stream and a
// software tick source for driving internal/receiver without real
// hardware, the offline counterpart to the teacher's gen_tone.go
// waveform synthesis.
package simclock

import (
	"context"
	"time"

	"github.com/kf0wwv/wwvbrx/internal/discipline"
	"github.com/kf0wwv/wwvbrx/internal/symbol"
	"github.com/kf0wwv/wwvbrx/internal/ticksource"
)

// ticksPerSymbol is one WWVB symbol period at the receiver's nominal
// 60Hz sample rate.
const ticksPerSymbol = 60

// highTicks is the number of leading high-envelope ticks within a
// symbol's 60-tick window: 0.2s/0.5s/0.8s pulse widths scaled to 60
// ticks/s, matching the "current symbol" span of internal/correlate's
// fixed templates.
func highTicks(k symbol.Kind) int {
	switch k {
	case symbol.Zero:
		return 12
	case symbol.One:
		return 30
	case symbol.Marker:
		return 48
	default:
		return 0
	}
}

// Waveform generates the raw demodulated bit for an indefinitely
// repeating sequence of symbols, implementing inputsource.BitReader.
type Waveform struct {
	seq          []symbol.Kind
	idx          int
	tickInSymbol int
}

// NewWaveform builds a Waveform cycling through seq. seq must be
// non-empty.
func NewWaveform(seq []symbol.Kind) *Waveform {
	return &Waveform{seq: seq}
}

// ReadBit implements inputsource.BitReader, advancing by exactly one
// tick per call.
func (w *Waveform) ReadBit() (byte, error) {
	sym := w.seq[w.idx]
	var bit byte
	if w.tickInSymbol < highTicks(sym) {
		bit = 1
	}

	w.tickInSymbol++
	if w.tickInSymbol >= ticksPerSymbol {
		w.tickInSymbol = 0
		w.idx = (w.idx + 1) % len(w.seq)
	}
	return bit, nil
}

// bcdField mirrors internal/frame's BCD layout for test-fixture
// construction; kept independent of that package's unexported tables
// since encoding (here) and decoding (there) are separate concerns
// built from the same published bit positions (spec §6).
type bcdField struct {
	pos    int
	weight int
}

var (
	minutesTens  = []bcdField{{1, 40}, {2, 20}, {3, 10}}
	minutesUnits = []bcdField{{5, 8}, {6, 4}, {7, 2}, {8, 1}}
	hoursTens    = []bcdField{{12, 20}, {13, 10}}
	hoursUnits   = []bcdField{{15, 8}, {16, 4}, {17, 2}, {18, 1}}
	dayHundreds  = []bcdField{{22, 200}, {23, 100}}
	dayTens      = []bcdField{{25, 80}, {26, 40}, {27, 20}, {28, 10}}
	dayUnits     = []bcdField{{30, 8}, {31, 4}, {32, 2}, {33, 1}}
	yearTens     = []bcdField{{45, 80}, {46, 40}, {47, 20}, {48, 10}}
	yearUnits    = []bcdField{{50, 8}, {51, 4}, {52, 2}, {53, 1}}

	leapYearPosition = 55
	markerPositions  = [...]int{0, 9, 19, 29, 39, 49, 59}
)

func setBCD(slots []symbol.Kind, fields []bcdField, value int) {
	remaining := value
	for _, f := range fields {
		if remaining >= f.weight {
			slots[f.pos] = symbol.One
			remaining -= f.weight
		}
	}
}

// Frame builds a 60-symbol sequence encoding minutes/hours/dayOfYear/
// yearTwoDigit/leapYear the way an on-air WWVB frame would, for feeding
// to NewWaveform in tests and cmd/wwvbsim.
func Frame(minutes, hours, dayOfYear, yearTwoDigit int, leapYear bool) []symbol.Kind {
	slots := make([]symbol.Kind, ticksPerSymbol)
	for i := range slots {
		slots[i] = symbol.Zero
	}
	for _, p := range markerPositions {
		slots[p] = symbol.Marker
	}

	setBCD(slots, minutesTens, minutes/10*10)
	setBCD(slots, minutesUnits, minutes%10)
	setBCD(slots, hoursTens, hours/10*10)
	setBCD(slots, hoursUnits, hours%10)
	setBCD(slots, dayHundreds, dayOfYear/100*100)
	setBCD(slots, dayTens, (dayOfYear/10)%10*10)
	setBCD(slots, dayUnits, dayOfYear%10)
	setBCD(slots, yearTens, yearTwoDigit/10*10)
	setBCD(slots, yearUnits, yearTwoDigit%10)
	if leapYear {
		slots[leapYearPosition] = symbol.One
	}
	return slots
}

// Source is a software ticksource.Source driven by a real-time ticker,
// for cmd/wwvbsim where no hardware interrupt exists. It approximates
// the fractional-divider cadence by averaging whole and whole+1 cycle
// counts into a single time.Duration rather than reproducing the exact
// long/short alternation real hardware delivers (spec §4.L's bounded
// jitter requirement does not apply to an offline simulator).
type Source struct {
	cyclesPerSecond uint64
	cb              ticksource.Callback
	period          time.Duration

	cancel context.CancelFunc
}

// NewSource builds a Source whose raw cycle rate (e.g. a crystal
// frequency) is cyclesPerSecond; SetPeriod durations are expressed in
// those cycles.
func NewSource(cyclesPerSecond uint64) *Source {
	s := &Source{cyclesPerSecond: cyclesPerSecond}
	s.SetPeriod(uint32(discipline.NominalWhole), discipline.NominalFrac, discipline.Denom)
	return s
}

func (s *Source) SetPeriod(wholeCycles uint32, fracNum, fracDenom uint8) error {
	avgCycles := float64(wholeCycles) + float64(fracNum)/float64(fracDenom)
	seconds := avgCycles / float64(s.cyclesPerSecond)
	s.period = time.Duration(seconds * float64(time.Second))
	return nil
}

func (s *Source) OnTick(cb ticksource.Callback) { s.cb = cb }

func (s *Source) Start() error {
	if s.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.cb != nil {
					s.cb()
				}
			}
		}
	}()
	return nil
}

func (s *Source) Stop() error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	s.cancel = nil
	return nil
}
