// Package acquisition implements the SEEK/SYNC state machine: searching
// for aligned symbols versus locked tracking with drift-driven clock
// discipline (spec §4.G).
package acquisition

import (
	"github.com/kf0wwv/wwvbrx/internal/discipline"
	"github.com/kf0wwv/wwvbrx/internal/frame"
	"github.com/kf0wwv/wwvbrx/internal/symbol"
)

// State is the acquisition mode.
type State int

const (
	Seek State = iota
	Sync
)

func (s State) String() string {
	if s == Sync {
		return "SYNC"
	}
	return "SEEK"
}

// Config holds the tunable thresholds of spec §6's configuration
// surface that govern this state machine.
type Config struct {
	SeekDetectedThreshold int // spec: 10
	SyncMissThreshold     int // spec: 6
	DriftTrigger          int // spec: 15
	MinDisciplineTicks    int // spec: 1000
	PersistAfterTicks     int // spec: ~500000
}

// DefaultConfig returns the threshold values spec §4.G names.
func DefaultConfig() Config {
	return Config{
		SeekDetectedThreshold: 10,
		SyncMissThreshold:     6,
		DriftTrigger:          15,
		MinDisciplineTicks:    1000,
		PersistAfterTicks:     500_000,
	}
}

// Outcome summarizes what happened on one Tick call, for the
// orchestrator (internal/receiver) to act on.
type Outcome struct {
	Detected        bool
	Symbol          symbol.Kind
	StateChanged    bool
	DisciplineFired bool
	PersistRequest  bool
}

// Tracker is the SEEK/SYNC state machine. It is the sole writer of its
// own fields; only the tick ctx (internal/receiver) calls Tick.
type Tracker struct {
	cfg Config

	state State

	// SEEK state.
	detectedCount int

	// SYNC state.
	peekIn               int
	missedCount          int
	accumulatedOffset    int
	ticksSinceDiscipline int
	ticksInSync          int

	params discipline.Params
}

// NewTracker starts in SEEK with the given initial clock params (from
// internal/calibration.Load at startup).
func NewTracker(cfg Config, initial discipline.Params) *Tracker {
	return &Tracker{cfg: cfg, state: Seek, params: initial, peekIn: frame.Slots}
}

// State returns the current acquisition mode.
func (t *Tracker) State() State { return t.state }

// Params returns the current disciplined clock params.
func (t *Tracker) Params() discipline.Params { return t.params }

// Tick evaluates one tick's worth of scoreboard state and drives the
// state machine, pushing a detected symbol (or '-') into stream when
// appropriate. It returns an Outcome the orchestrator uses to decide
// whether to run the frame decoder or request persistence.
func (t *Tracker) Tick(boards symbol.Boards, stream *frame.Stream) Outcome {
	if t.state == Seek {
		return t.tickSeek(boards, stream)
	}
	return t.tickSync(boards, stream)
}

func (t *Tracker) tickSeek(boards symbol.Boards, stream *frame.Stream) Outcome {
	det := symbol.DetectCentered(boards)
	if det.Kind == symbol.None {
		return Outcome{}
	}

	stream.Shift(det.Kind)
	t.detectedCount++

	out := Outcome{Detected: true, Symbol: det.Kind}
	if t.detectedCount >= t.cfg.SeekDetectedThreshold {
		t.enterSync()
		out.StateChanged = true
	}
	return out
}

func (t *Tracker) enterSync() {
	t.state = Sync
	t.detectedCount = 0
	t.peekIn = frame.Slots
	t.missedCount = 0
	t.accumulatedOffset = 0
	t.ticksSinceDiscipline = 0
	t.ticksInSync = 0
}

func (t *Tracker) enterSeek() {
	t.state = Seek
	t.detectedCount = 0
}

func (t *Tracker) tickSync(boards symbol.Boards, stream *frame.Stream) Outcome {
	t.ticksSinceDiscipline++

	var out Outcome
	t.ticksInSync++
	if t.ticksInSync >= t.cfg.PersistAfterTicks {
		t.ticksInSync = 0
		out.PersistRequest = true
	}

	t.peekIn--
	if t.peekIn > 0 {
		return out
	}

	det := symbol.DetectAnyPeak(boards)
	if det.Kind != symbol.None {
		stream.Shift(det.Kind)
		t.missedCount = 0
		t.accumulatedOffset += det.Offset
		t.peekIn = frame.Slots + det.Offset
		out.Detected = true
		out.Symbol = det.Kind
	} else {
		stream.Shift(symbol.Missing)
		t.missedCount++
		t.peekIn = frame.Slots
		if t.missedCount >= t.cfg.SyncMissThreshold {
			t.enterSeek()
			out.StateChanged = true
			return out
		}
	}

	if abs(t.accumulatedOffset) > t.cfg.DriftTrigger && t.ticksSinceDiscipline > t.cfg.MinDisciplineTicks {
		local := uint64(t.ticksSinceDiscipline)
		apparent := int64(local) - int64(t.accumulatedOffset)
		if apparent > 0 {
			t.params = discipline.Adjust(t.params, local, uint64(apparent))
			out.DisciplineFired = true
		}
		t.accumulatedOffset = 0
		t.ticksSinceDiscipline = 0
	}

	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
