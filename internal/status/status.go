// Package status builds and serves the diagnostic snapshot an operator
// or the adapter/statusannounce mDNS listener queries, the receiver's
// analogue of the teacher's appserver.go status JSON.
package status

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kf0wwv/wwvbrx/internal/frame"
	"github.com/kf0wwv/wwvbrx/internal/receiver"
)

// Snapshot is the JSON body served at GET /status.
type Snapshot struct {
	AcquisitionState  string        `json:"acquisition_state"`
	HasFix            bool          `json:"has_fix"`
	LastFrame         *frame.Fields `json:"last_frame,omitempty"`
	ClockScaledCounts uint64        `json:"clock_scaled_counts"`
	SecondsSinceFix   float64       `json:"seconds_since_fix"`
}

// clock tracks the wall time at which a request first saw the current
// decoded frame, so SecondsSinceFix can report staleness even though the
// core itself has no wall-clock notion. A new frame is recognized by
// its fields differing from the last ones seen; a frame identical to
// the previous one is not counted as new.
type clock struct {
	lastFix    time.Time
	lastFields frame.Fields
	haveFix    bool
	nowSource  func() time.Time
}

// Server serves Snapshot over HTTP, polling dev on each request rather
// than caching: the receiver's read methods are cheap, lock-free
// snapshots (spec §5).
type Server struct {
	dev   *receiver.Device
	clock clock
}

// NewServer wraps dev. nowSource defaults to time.Now; tests may
// override it.
func NewServer(dev *receiver.Device) *Server {
	return &Server{dev: dev, clock: clock{nowSource: time.Now}}
}

func (s *Server) buildSnapshot() Snapshot {
	now := s.clock.nowSource()
	fields, ok := s.dev.DecodedFrame()
	if ok && (!s.clock.haveFix || fields != s.clock.lastFields) {
		s.clock.lastFix = now
		s.clock.lastFields = fields
		s.clock.haveFix = true
	}

	snap := Snapshot{
		AcquisitionState:  s.dev.State().String(),
		HasFix:            s.clock.haveFix,
		ClockScaledCounts: s.dev.ClockParams().Scaled(),
	}
	if ok {
		snap.LastFrame = &fields
	}
	if s.clock.haveFix {
		snap.SecondsSinceFix = now.Sub(s.clock.lastFix).Seconds()
	}
	return snap
}

// ServeHTTP implements http.Handler, writing the current Snapshot as
// JSON.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.buildSnapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
