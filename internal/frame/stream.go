// Package frame implements the 60-slot symbol buffer, its
// frame-alignment scoring, and decoding a confirmed frame into
// date/time fields per the WWVB BCD layout.
package frame

import "github.com/kf0wwv/wwvbrx/internal/symbol"

// Slots is the frame length in symbols, one per second.
const Slots = 60

// markerPositions are the slots that must hold a MARKER for a valid
// frame (spec §3/§6).
var markerPositions = [...]int{0, 9, 19, 29, 39, 49, 59}

func isMarkerPosition(i int) bool {
	for _, p := range markerPositions {
		if p == i {
			return true
		}
	}
	return false
}

// Stream is the 60-slot symbol FIFO. Position 0 is oldest, 59 is
// newest.
type Stream struct {
	slots [Slots]symbol.Kind
	score int
}

// NewStream returns a Stream with every slot set to Missing.
func NewStream() *Stream {
	s := &Stream{}
	for i := range s.slots {
		s.slots[i] = symbol.Missing
	}
	return s
}

// Shift inserts sym at position Slots-1, shifting all older slots
// toward 0 (the slot at position 0 is discarded), then recomputes the
// frame-alignment score.
func (s *Stream) Shift(sym symbol.Kind) {
	copy(s.slots[:Slots-1], s.slots[1:])
	s.slots[Slots-1] = sym
	s.score = s.computeScore()
}

func (s *Stream) computeScore() int {
	total := 0
	for i, v := range s.slots {
		if isMarkerPosition(i) {
			if v == symbol.Marker {
				total++
			}
			continue
		}
		if v == symbol.Zero || v == symbol.One {
			total++
		}
	}
	return total
}

// Score returns the current frame-alignment score, an integer in
// [0, 60].
func (s *Stream) Score() int {
	return s.score
}

// ValidFrame reports whether the current buffer is a fully-aligned
// candidate frame (score == Slots).
func (s *Stream) ValidFrame() bool {
	return s.score == Slots
}

// Slot returns the symbol at position i (0 = oldest, Slots-1 = newest).
func (s *Stream) Slot(i int) symbol.Kind {
	return s.slots[i]
}
