package frame

import "github.com/kf0wwv/wwvbrx/internal/symbol"

// bcdField is one (position, weight) contribution to a BCD-encoded
// field. Positions are spec §6 bit indices into the 60-slot frame.
type bcdField struct {
	pos    int
	weight int
}

type bcdFieldList []bcdField

var (
	minutesTens  = bcdFieldList{{1, 40}, {2, 20}, {3, 10}}
	minutesUnits = bcdFieldList{{5, 8}, {6, 4}, {7, 2}, {8, 1}}
	hoursTens    = bcdFieldList{{12, 20}, {13, 10}}
	hoursUnits   = bcdFieldList{{15, 8}, {16, 4}, {17, 2}, {18, 1}}
	dayHundreds  = bcdFieldList{{22, 200}, {23, 100}}
	dayTens      = bcdFieldList{{25, 80}, {26, 40}, {27, 20}, {28, 10}}
	dayUnits     = bcdFieldList{{30, 8}, {31, 4}, {32, 2}, {33, 1}}
	yearTens     = bcdFieldList{{45, 80}, {46, 40}, {47, 20}, {48, 10}}
	yearUnits    = bcdFieldList{{50, 8}, {51, 4}, {52, 2}, {53, 1}}

	leapYearPosition = 55
)

func (fields bcdFieldList) sum(s *Stream) int {
	total := 0
	for _, f := range fields {
		if s.Slot(f.pos) == symbol.One {
			total += f.weight
		}
	}
	return total
}

// Fields is the decoded content of a valid WWVB frame, already advanced
// to the minute currently being displayed (spec §4.F: the frame encodes
// the time at its first mark, so the minute shown while the frame plays
// is decoded+1).
type Fields struct {
	Minutes      int // 0-59
	Hours        int // 0-23
	DayOfYear    int // 1-366
	YearTwoDigit int // 0-99
	LeapYear     bool
}

// Decode extracts the BCD fields from a stream known to be aligned
// (s.ValidFrame()), advances by one minute (the frame boundary) plus
// ticksDelta ticks (at 60 per second) of processing latency, cascading
// the carry through hours, day-of-year, and year as needed. Fields has
// no seconds, so only whole minutes of ticksDelta are applied; the
// sub-minute remainder is dropped.
//
// Decode does not itself check ValidFrame; its caller (internal/receiver)
// only invokes it when the stream has just raised a valid-frame
// condition, per spec §4.F's contract ("given a 60-symbol stream known
// to be aligned").
func Decode(s *Stream, ticksDelta int) Fields {
	f := Fields{
		Minutes:      minutesTens.sum(s) + minutesUnits.sum(s),
		Hours:        hoursTens.sum(s) + hoursUnits.sum(s),
		DayOfYear:    dayHundreds.sum(s) + dayTens.sum(s) + dayUnits.sum(s),
		YearTwoDigit: yearTens.sum(s) + yearUnits.sum(s),
		LeapYear:     s.Slot(leapYearPosition) == symbol.One,
	}

	minutesToAdd := 1 + ticksDelta/(60*60)
	advanceMinutes(&f, minutesToAdd)
	return f
}

func daysInYear(leap bool) int {
	if leap {
		return 366
	}
	return 365
}

// advanceMinutes cascades n minutes of carry through hours, day, and
// year, wrapping each field at its natural bound. The year wraps its
// two-digit representation only; century is outside this core's scope
// (spec §6: "Year is last two digits; century is implicit").
func advanceMinutes(f *Fields, n int) {
	total := f.Hours*60 + f.Minutes + n
	f.Hours = (total / 60) % 24
	daysCarried := total / (60 * 24)
	f.Minutes = total % 60

	f.DayOfYear += daysCarried
	for f.DayOfYear > daysInYear(f.LeapYear) {
		f.DayOfYear -= daysInYear(f.LeapYear)
		f.YearTwoDigit = (f.YearTwoDigit + 1) % 100
		// A new calendar year may change leap-year status, but this
		// core has no independent source of that for the *next* year
		// (spec has no century/leap-rule engine - §1 Non-goals); carry
		// forward the same leap flag until the next decoded frame
		// corrects it.
	}
}
