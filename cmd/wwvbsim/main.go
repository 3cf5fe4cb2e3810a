// Command wwvbsim drives internal/receiver from a synthetic WWVB
// waveform rather than real hardware, for exercising the full
// acquisition/decode/discipline pipeline offline. The software-generator
// counterpart to the teacher's cmd/gen_tone.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kf0wwv/wwvbrx/internal/acquisition"
	"github.com/kf0wwv/wwvbrx/internal/diag"
	"github.com/kf0wwv/wwvbrx/internal/discipline"
	"github.com/kf0wwv/wwvbrx/internal/receiver"
	"github.com/kf0wwv/wwvbrx/internal/simclock"
)

func main() {
	minutes := pflag.Int("minutes", 35, "starting minute field to encode (0-59)")
	hours := pflag.Int("hours", 10, "starting hour field to encode (0-23)")
	dayOfYear := pflag.Int("day", 152, "starting day-of-year field to encode (1-366)")
	year := pflag.Int("year", 17, "starting two-digit year field to encode")
	leap := pflag.Bool("leap-year", false, "set the leap-year bit")
	ticks := pflag.Int("ticks", 60*60*2, "number of 60Hz ticks to simulate")
	verbose := pflag.BoolP("verbose", "v", false, "log every state transition and decoded frame")
	pflag.Parse()

	level := diag.LevelInfo
	if *verbose {
		level = diag.LevelDebug
	}
	log := diag.New(os.Stderr, level)

	seq := simclock.Frame(*minutes, *hours, *dayOfYear, *year, *leap)
	wf := simclock.NewWaveform(seq)

	dev := receiver.New(wf, discipline.Nominal(), acquisition.DefaultConfig(), log)

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		dev.Tick()

		if dev.ConsumeValidFrame() {
			fields, _ := dev.DecodedFrame()
			log.Info("valid frame decoded", "minutes", fields.Minutes, "hours", fields.Hours,
				"dayOfYear", fields.DayOfYear, "year", fields.YearTwoDigit, "leapYear", fields.LeapYear)
		}
		if dev.ConsumeSecondChanged() && *verbose {
			tod := dev.TimeOfDay()
			log.Debug("second", "h", tod.Hours, "m", tod.Minutes, "s", tod.Seconds, "state", dev.State().String())
		}
	}

	tod := dev.TimeOfDay()
	result := map[string]any{
		"elapsed_wall":       time.Since(start).String(),
		"final_state":        dev.State().String(),
		"final_hours":        tod.Hours,
		"final_minutes":      tod.Minutes,
		"final_seconds":      tod.Seconds,
		"final_day_of_year":  tod.DayOfYear,
		"has_fix":            tod.HasFix,
		"clock_scaled_count": dev.ClockParams().Scaled(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "wwvbsim: %v\n", err)
		os.Exit(1)
	}
}
