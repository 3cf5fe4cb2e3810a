package correlate

import "github.com/kf0wwv/wwvbrx/internal/bitreg"

// Template is an immutable 80-bit reference pattern, stored in the same
// byte/bit ordering as bitreg.Register (byte 0 = most recent, LSB of
// each byte = more recent bit within that byte).
type Template [bitreg.Bytes]byte

// segment describes a run of same-valued bits as documented in spec §3,
// written in the order the spec prose lists them: oldest bit first,
// newest (tail) bit last.
type segment struct {
	length int
	one    bool
}

func build(segs ...segment) Template {
	var t Template
	// Fill from the oldest position (79) down to the newest (0), since
	// segs is given oldest-first.
	pos := bitreg.Width - 1
	for _, s := range segs {
		for n := 0; n < s.length; n++ {
			if s.one {
				t[pos/8] |= 1 << uint(pos%8)
			}
			pos--
		}
	}
	return t
}

// Templates per spec §3 and §6, built from the segment lengths the
// specification gives verbatim. ZERO's trailing segment is low where
// ONE's and MARKER's are high; spec §9 names this apparent
// inconsistency directly and says not to "fix" it by inference, so it
// is kept exactly as given here. See internal/symbol and
// internal/scoreboard for the consequence this has on ZERO's
// detectable score ceiling.
var (
	Zero   = build(segment{10, false}, segment{12, true}, segment{48, false}, segment{10, false})
	One    = build(segment{10, false}, segment{30, true}, segment{30, false}, segment{10, true})
	Marker = build(segment{10, false}, segment{48, true}, segment{12, false}, segment{10, true})
)
