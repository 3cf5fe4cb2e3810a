// Package calibration persists and restores the learned oscillator
// calibration (internal/discipline.Params) across power cycles.
package calibration

import (
	"encoding/binary"
	"fmt"

	"github.com/kf0wwv/wwvbrx/internal/discipline"
)

// Supported record versions (spec §6).
const (
	VersionV1    uint8 = 1
	VersionV2    uint8 = 2
	VersionLatest      = VersionV2
)

// v1Denom is the sub-cycle denominator v1 records used; v2 uses
// discipline.Denom (64). v1's fraction numerator is converted on read
// by multiplying by 4 (64/16).
const v1Denom = 16

// RecordLen is the on-disk record size: 1 byte version + 4 bytes
// little-endian scaled_counts.
const RecordLen = 1 + 4

// Record is the raw persisted form, version plus a scaled count
// interpreted per that version's denominator.
type Record struct {
	Version      uint8
	ScaledCounts uint32
}

// Encode writes the record as little-endian raw bytes: version, then
// scaled_counts (spec §6).
func (r Record) Encode() [RecordLen]byte {
	var buf [RecordLen]byte
	buf[0] = r.Version
	binary.LittleEndian.PutUint32(buf[1:], r.ScaledCounts)
	return buf
}

// DecodeRecord parses a raw on-disk record. It does not validate the
// version; callers use ToParams to convert and reject unrecognized
// versions.
func DecodeRecord(buf []byte) (Record, error) {
	if len(buf) < RecordLen {
		return Record{}, fmt.Errorf("calibration: record too short: got %d bytes, want %d", len(buf), RecordLen)
	}
	return Record{
		Version:      buf[0],
		ScaledCounts: binary.LittleEndian.Uint32(buf[1:RecordLen]),
	}, nil
}

// ToParams converts a versioned record into discipline.Params,
// converting v1's denominator-16 fraction to v2's denominator-64 scale.
func (r Record) ToParams() (discipline.Params, error) {
	switch r.Version {
	case VersionV1:
		whole := uint16(r.ScaledCounts / v1Denom)
		fracV1 := uint8(r.ScaledCounts % v1Denom)
		fracV2 := fracV1 * (discipline.Denom / v1Denom)
		return discipline.Params{Whole: whole, Frac: fracV2}, nil
	case VersionV2:
		return discipline.FromScaled(uint64(r.ScaledCounts)), nil
	default:
		return discipline.Params{}, fmt.Errorf("calibration: unrecognized version %d", r.Version)
	}
}

// FromParams produces the latest-version record for p.
func FromParams(p discipline.Params) Record {
	return Record{Version: VersionLatest, ScaledCounts: uint32(p.Scaled())}
}
