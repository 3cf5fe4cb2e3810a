package acquisition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kf0wwv/wwvbrx/internal/discipline"
	"github.com/kf0wwv/wwvbrx/internal/frame"
	"github.com/kf0wwv/wwvbrx/internal/scoreboard"
	"github.com/kf0wwv/wwvbrx/internal/symbol"
)

func centeredBoards(t *testing.T) symbol.Boards {
	t.Helper()
	var zero, one, marker scoreboard.Board
	for i := 0; i < scoreboard.Len; i++ {
		var s uint8 = 1
		if i == scoreboard.Len-1-scoreboard.Center {
			s = 75
		}
		zero.Shift(s)
		one.Shift(1)
		marker.Shift(1)
	}
	return symbol.Boards{Zero: &zero, One: &one, Marker: &marker}
}

func flatBoards() symbol.Boards {
	var zero, one, marker scoreboard.Board
	for i := 0; i < scoreboard.Len; i++ {
		zero.Shift(1)
		one.Shift(1)
		marker.Shift(1)
	}
	return symbol.Boards{Zero: &zero, One: &one, Marker: &marker}
}

func TestSeekToSyncAtExactThreshold(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewTracker(cfg, discipline.Nominal())
	stream := frame.NewStream()

	for i := 0; i < cfg.SeekDetectedThreshold-1; i++ {
		out := tr.Tick(centeredBoards(t), stream)
		assert.True(t, out.Detected)
		assert.False(t, out.StateChanged)
		assert.Equal(t, Seek, tr.State())
	}

	out := tr.Tick(centeredBoards(t), stream)
	assert.True(t, out.StateChanged)
	assert.Equal(t, Sync, tr.State())
}

func TestSeekIgnoresOffCenterPeaks(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewTracker(cfg, discipline.Nominal())
	stream := frame.NewStream()

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
	boards := symbol.Boards{Zero: &zero, One: &one, Marker: &marker}

	for i := 0; i < 50; i++ {
		out := tr.Tick(boards, stream)
		assert.False(t, out.Detected)
	}
	assert.Equal(t, Seek, tr.State())
}

func syncedTracker(t *testing.T) (*Tracker, *frame.Stream) {
	t.Helper()
	cfg := DefaultConfig()
	tr := NewTracker(cfg, discipline.Nominal())
	stream := frame.NewStream()
	for i := 0; i < cfg.SeekDetectedThreshold; i++ {
		tr.Tick(centeredBoards(t), stream)
	}
	if tr.State() != Sync {
		t.Fatalf("setup failed to reach SYNC")
	}
	return tr, stream
}

func TestSyncToSeekAtExactMissThreshold(t *testing.T) {
	tr, stream := syncedTracker(t)

	changedAt := -1
	for i := 0; i < 10*frame.Slots; i++ {
		out := tr.Tick(flatBoards(), stream)
		if out.Detected {
			t.Fatalf("unexpected detection against flat (noise) boards")
		}
		if !out.StateChanged {
			continue
		}
		changedAt = i + 1
		break
	}
	// Each miss is one peek, and peeks come every frame.Slots ticks while
	// nothing is detected, so SEEK is re-entered on the
	// SyncMissThreshold-th peek and not before.
	assert.Equal(t, DefaultConfig().SyncMissThreshold*frame.Slots, changedAt)
	assert.Equal(t, Seek, tr.State())
}
