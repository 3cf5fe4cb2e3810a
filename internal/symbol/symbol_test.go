package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kf0wwv/wwvbrx/internal/scoreboard"
)

func feedCentered(b *scoreboard.Board, peak uint8) {
	for i := 0; i < scoreboard.Len; i++ {
		var s uint8 = 1
		if i == scoreboard.Len-1-scoreboard.Center {
			s = peak
		}
		b.Shift(s)
	}
}

func TestDetectCenteredFindsZero(t *testing.T) {
	var zero, one, marker scoreboard.Board
	feedCentered(&zero, 75)
	for i := 0; i < scoreboard.Len; i++ {
		one.Shift(1)
		marker.Shift(1)
	}

	det := DetectCentered(Boards{Zero: &zero, One: &one, Marker: &marker})
	assert.Equal(t, Zero, det.Kind)
	assert.Equal(t, 0, det.Offset)
}

func TestDetectCenteredIgnoresOffCenterPeak(t *testing.T) {
	var zero, one, marker scoreboard.Board
	for i := 0; i < scoreboard.Len; i++ {
		var s uint8 = 1
		if i == 0 {
			s = 90
		}
		zero.Shift(s)
		one.Shift(1)
		marker.Shift(1)
	}

	det := DetectCentered(Boards{Zero: &zero, One: &one, Marker: &marker})
	assert.Equal(t, None, det.Kind)
}

func TestDetectAnyPeakReportsOffset(t *testing.T) {
	var zero, one, marker scoreboard.Board
	for i := 0; i < scoreboard.Len; i++ {
		var s uint8 = 1
		if i == 0 {
			s = 90
		}
		marker.Shift(s)
		zero.Shift(1)
		one.Shift(1)
	}

	det := DetectAnyPeak(Boards{Zero: &zero, One: &one, Marker: &marker})
	assert.Equal(t, Marker, det.Kind)
	// The value shifted in at i == 0 ends up in the oldest slot, Len-1.
	assert.Equal(t, scoreboard.Center-(scoreboard.Len-1), det.Offset)
}
