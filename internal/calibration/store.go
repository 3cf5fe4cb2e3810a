package calibration

import (
	"github.com/kf0wwv/wwvbrx/internal/diag"
	"github.com/kf0wwv/wwvbrx/internal/discipline"
)

// Store is the narrow interface onto the byte-persistent backing store
// (spec §1: "out of scope... consumed via narrow interfaces"). A fixed
// offset of 0 is used throughout, per spec §6.
type Store interface {
	ReadAt(p []byte, offset int64) (n int, err error)
	WriteAt(p []byte, offset int64) (n int, err error)
}

// LoadReport records what Load actually did, for diagnostics (spec §7:
// "log diagnostic, use compile-time defaults, continue").
type LoadReport struct {
	VersionRead  uint8
	Converted    bool // true if a v1 record was upgraded to v2 scale
	UsedDefaults bool
	ReadErr      error
}

// Load reads the calibration record from store and returns the
// resulting Params plus a report of what happened. On any failure
// (I/O error, unrecognized version, short read) it logs via l and
// falls back to discipline.Nominal(), never returning an error: spec §7
// requires calibration read failure to be non-fatal.
func Load(store Store, l *diag.Logger) (discipline.Params, LoadReport) {
	buf := make([]byte, RecordLen)
	n, err := store.ReadAt(buf, 0)
	if err != nil || n < RecordLen {
		if l != nil {
			l.Error("calibration read failed, using defaults", "err", err, "bytesRead", n)
		}
		return discipline.Nominal(), LoadReport{UsedDefaults: true, ReadErr: err}
	}

	rec, err := DecodeRecord(buf)
	if err != nil {
		if l != nil {
			l.Error("calibration record malformed, using defaults", "err", err)
		}
		return discipline.Nominal(), LoadReport{UsedDefaults: true, ReadErr: err}
	}

	params, err := rec.ToParams()
	if err != nil {
		if l != nil {
			l.Error("calibration version unrecognized, using defaults", "err", err, "version", rec.Version)
		}
		return discipline.Nominal(), LoadReport{VersionRead: rec.Version, UsedDefaults: true, ReadErr: err}
	}

	return params, LoadReport{VersionRead: rec.Version, Converted: rec.Version == VersionV1}
}

// PersistNow writes the current params as a latest-version record.
// Write failures are diagnostic-only and never fatal (spec §7): the
// caller retries on the next trigger.
func PersistNow(store Store, p discipline.Params, l *diag.Logger) error {
	rec := FromParams(p)
	buf := rec.Encode()
	_, err := store.WriteAt(buf[:], 0)
	if err != nil && l != nil {
		l.Error("calibration persist failed, will retry next trigger", "err", err)
	}
	return err
}
