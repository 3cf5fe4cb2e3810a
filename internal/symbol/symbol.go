// Package symbol implements the per-tick decision of whether a WWVB
// symbol has just been received, reading the three scoreboards
// internal/scoreboard maintains.
package symbol

import "github.com/kf0wwv/wwvbrx/internal/scoreboard"

// Kind identifies a decoded WWVB symbol, or the absence of one.
type Kind byte

const (
	None    Kind = 0
	Zero    Kind = '0'
	One     Kind = '1'
	Marker  Kind = 'M'
	Missing Kind = '-'
)

// Threshold is the fixed correlator-score threshold a board's peak must
// meet or exceed to count as a detection (spec §4.D: "near 70 of 80");
// see scoreboard.Board.MaxOverThreshold for why the comparison is
// inclusive.
const Threshold uint8 = 70

// Boards groups the three scoreboards the detector reads each tick.
type Boards struct {
	Zero, One, Marker *scoreboard.Board
}

// Detection is the result of one detector evaluation.
type Detection struct {
	Kind Kind
	// Offset is center - peak_index for the board that fired, the
	// drift signal used while tracking (spec §4.G). Zero when Kind is
	// None or Missing.
	Offset int
}

// DetectCentered implements SEEK-mode detection: only a peak sitting
// exactly in the scoreboard's center slot counts. Checked in
// ZERO, ONE, MARKER order; ties should be rare per spec §4.D.
func DetectCentered(b Boards) Detection {
	for _, c := range []struct {
		kind  Kind
		board *scoreboard.Board
	}{{Zero, b.Zero}, {One, b.One}, {Marker, b.Marker}} {
		if _, _, ok := c.board.MaxOverThreshold(Threshold); ok && c.board.PeakInCenter() {
			return Detection{Kind: c.kind, Offset: 0}
		}
	}
	return Detection{Kind: None}
}

// DetectAnyPeak implements SYNC-mode detection: any peak at or above
// threshold counts, wherever it sits, with the center-relative offset
// reported as the drift signal.
func DetectAnyPeak(b Boards) Detection {
	for _, c := range []struct {
		kind  Kind
		board *scoreboard.Board
	}{{Zero, b.Zero}, {One, b.One}, {Marker, b.Marker}} {
		if _, index, ok := c.board.MaxOverThreshold(Threshold); ok {
			return Detection{Kind: c.kind, Offset: scoreboard.Center - index}
		}
	}
	return Detection{Kind: None}
}
