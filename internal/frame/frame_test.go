package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kf0wwv/wwvbrx/internal/symbol"
)

// buildFrame encodes minutes, hours, dayOfYear, yearTwoDigit, leapYear
// into a 60-symbol sequence the way Decode expects to read it back,
// for use as a test fixture only.
func buildFrame(minutes, hours, dayOfYear, yearTwoDigit int, leapYear bool) [Slots]symbol.Kind {
	var s [Slots]symbol.Kind
	for i := range s {
		s[i] = symbol.Zero
	}
	for _, p := range markerPositions {
		s[p] = symbol.Marker
	}

	// setBCD greedily decomposes value into the field's descending
	// binary weights (e.g. 40,20,10 for a tens digit 0-7), the inverse
	// of Decode's summation.
	setBCD := func(fields bcdFieldList, value int) {
		remaining := value
		for _, f := range fields {
			if remaining >= f.weight {
				s[f.pos] = symbol.One
				remaining -= f.weight
			}
		}
	}
	setBCD(minutesTens, minutes/10*10)
	setBCD(minutesUnits, minutes%10)
	setBCD(hoursTens, hours/10*10)
	setBCD(hoursUnits, hours%10)
	setBCD(dayHundreds, dayOfYear/100*100)
	setBCD(dayTens, (dayOfYear/10%10)*10)
	setBCD(dayUnits, dayOfYear%10)
	setBCD(yearTens, yearTwoDigit/10*10)
	setBCD(yearUnits, yearTwoDigit%10)
	if leapYear {
		s[leapYearPosition] = symbol.One
	}
	return s
}

func streamFrom(s [Slots]symbol.Kind) *Stream {
	st := NewStream()
	for _, sym := range s {
		st.Shift(sym)
	}
	return st
}

func TestFrameAlignmentScoreValid(t *testing.T) {
	s := buildFrame(35, 10, 152, 17, false)
	st := streamFrom(s)
	assert.Equal(t, Slots, st.Score())
	assert.True(t, st.ValidFrame())
}

func TestFrameAlignmentScoreInvalidMarker(t *testing.T) {
	s := buildFrame(35, 10, 152, 17, false)
	s[9] = symbol.Zero // corrupt a marker position
	st := streamFrom(s)
	assert.Equal(t, Slots-1, st.Score())
	assert.False(t, st.ValidFrame())
}

func TestFrameAlignmentScoreMissingSymbol(t *testing.T) {
	s := buildFrame(35, 10, 152, 17, false)
	st := NewStream()
	for i, sym := range s {
		if i == 20 {
			st.Shift(symbol.Missing)
			continue
		}
		st.Shift(sym)
	}
	assert.Equal(t, Slots-1, st.Score())
}

func TestDecodeScenario1(t *testing.T) {
	s := buildFrame(35, 10, 152, 17, false)
	st := streamFrom(s)

	fields := Decode(st, 0)
	assert.Equal(t, 36, fields.Minutes)
	assert.Equal(t, 10, fields.Hours)
	assert.Equal(t, 152, fields.DayOfYear)
	assert.Equal(t, 17, fields.YearTwoDigit)
	assert.False(t, fields.LeapYear)
}

func TestDecodeCascadesHourOnMinuteRollover(t *testing.T) {
	s := buildFrame(59, 23, 365, 99, false)
	st := streamFrom(s)

	fields := Decode(st, 0)
	assert.Equal(t, 0, fields.Minutes)
	assert.Equal(t, 0, fields.Hours)
	assert.Equal(t, 1, fields.DayOfYear)
	assert.Equal(t, 0, fields.YearTwoDigit)
}

func TestDecodeLeapYearDayCount(t *testing.T) {
	s := buildFrame(59, 23, 366, 16, true)
	st := streamFrom(s)

	fields := Decode(st, 0)
	assert.Equal(t, 1, fields.DayOfYear)
	assert.Equal(t, 17, fields.YearTwoDigit)
}
