// Package localtime renders a timeofday.TimeOfDay snapshot as local
// wall-clock time, the way the teacher's xmit.go and tq.go format
// transmission timestamps with lestrrat-go/strftime.
package localtime

import (
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/kf0wwv/wwvbrx/internal/config"
	"github.com/kf0wwv/wwvbrx/internal/timeofday"
)

// century is assumed for the two-digit year WWVB transmits. Spec §6
// notes century is implicit and outside this core's scope; a real
// deployment would cross-check against a compiled-in epoch, which this
// core leaves to the caller.
const century = 2000

// ToUTC converts a TimeOfDay snapshot to a time.Time in UTC. The
// result's sub-second component is always zero: WWVB resolves to one
// second, and Ticks is a position within the current second rather than
// a fix-bearing subdivision.
func ToUTC(t timeofday.TimeOfDay) time.Time {
	base := time.Date(century+t.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, t.DayOfYear-1).
		Add(time.Duration(t.Hours)*time.Hour +
			time.Duration(t.Minutes)*time.Minute +
			time.Duration(t.Seconds)*time.Second)
}

// Local converts a TimeOfDay snapshot to local wall-clock time using the
// fixed UTC offset in cfg, advancing by one hour when cfg.ObserveDST is
// set. Spec §1 excludes a timezone/DST rule engine: "local offset is
// configured," so ObserveDST is a flat, operator-toggled bit rather than
// a computed date window — whoever sets cfg is responsible for flipping
// it at the appropriate time, the same way TZHours/TZMinutes are
// supplied rather than looked up.
func Local(t timeofday.TimeOfDay, cfg config.Params) time.Time {
	utc := ToUTC(t)
	offset := time.Duration(cfg.TZHours)*time.Hour + time.Duration(cfg.TZMinutes)*time.Minute
	if cfg.ObserveDST {
		offset += time.Hour
	}
	return utc.Add(offset)
}

// Format renders t using a strftime-style layout string, the same
// formatting language the teacher's transmit timestamp option accepts.
func Format(layout string, t time.Time) (string, error) {
	return strftime.Format(layout, t)
}
