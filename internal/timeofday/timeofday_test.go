package timeofday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalizationInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var tod TimeOfDay
		tod.IsLeapYear = rapid.Bool().Draw(rt, "leap")
		tod.DayOfYear = 1
		n := rapid.IntRange(1, 200000).Draw(rt, "ticks")
		for i := 0; i < n; i++ {
			tod.Tick()
		}
		if tod.Ticks >= TicksPerSecond {
			rt.Fatalf("ticks out of range: %d", tod.Ticks)
		}
		if tod.Seconds < 0 || tod.Seconds >= 61 {
			rt.Fatalf("seconds out of range: %d", tod.Seconds)
		}
		if tod.Minutes < 0 || tod.Minutes >= 60 {
			rt.Fatalf("minutes out of range: %d", tod.Minutes)
		}
		if tod.Hours < 0 || tod.Hours >= 24 {
			rt.Fatalf("hours out of range: %d", tod.Hours)
		}
		maxDay := 365
		if tod.IsLeapYear {
			maxDay = 366
		}
		if tod.DayOfYear < 1 || tod.DayOfYear > maxDay {
			rt.Fatalf("day of year out of range: %d", tod.DayOfYear)
		}
	})
}

func TestSecondAndMinuteRollover(t *testing.T) {
	var tod TimeOfDay
	tod.DayOfYear = 1
	for i := 0; i < TicksPerSecond; i++ {
		tod.Tick()
	}
	assert.Equal(t, 1, tod.Seconds)
	assert.True(t, tod.SecondChanged)

	for i := 0; i < TicksPerSecond*59; i++ {
		tod.Tick()
	}
	assert.Equal(t, 1, tod.Minutes)
	assert.Equal(t, 0, tod.Seconds)
}

func TestLeapMinuteAddsExtraSecond(t *testing.T) {
	var tod TimeOfDay
	tod.DayOfYear = 1
	tod.IsLeapMinute = true
	tod.Seconds = 59

	for i := 0; i < TicksPerSecond; i++ {
		tod.Tick()
	}
	assert.Equal(t, 60, tod.Seconds)
	assert.False(t, tod.MinuteChanged)

	for i := 0; i < TicksPerSecond; i++ {
		tod.Tick()
	}
	assert.Equal(t, 0, tod.Seconds)
	assert.Equal(t, 1, tod.Minutes)
	assert.False(t, tod.IsLeapMinute)
}

func TestDayAndYearRollover(t *testing.T) {
	var tod TimeOfDay
	tod.DayOfYear = 365
	tod.Hours = 23
	tod.Minutes = 59
	tod.Seconds = 59
	tod.Year = 23

	for i := 0; i < TicksPerSecond; i++ {
		tod.Tick()
	}
	assert.Equal(t, 1, tod.DayOfYear)
	assert.Equal(t, 24, tod.Year)
	assert.Equal(t, 0, tod.Hours)
}

func TestBlankingUntilFix(t *testing.T) {
	var tod TimeOfDay
	tod.DayOfYear = 1
	for i := 0; i < BlankAfterTicks; i++ {
		tod.Tick()
	}
	assert.False(t, tod.Blank)
	tod.Tick()
	assert.True(t, tod.Blank)

	tod.SetFromFrame(10, 5, 100, 24, false)
	assert.False(t, tod.Blank)
	assert.True(t, tod.HasFix)
}
