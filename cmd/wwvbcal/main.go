// Command wwvbcal inspects and resets the receiver's persisted
// oscillator calibration record without running the full receiver, the
// WWVB-core analogue of the teacher's standalone diagnostic tools like
// cmd/tnctest.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kf0wwv/wwvbrx/adapter/udevstore"
	"github.com/kf0wwv/wwvbrx/internal/calibration"
	"github.com/kf0wwv/wwvbrx/internal/diag"
	"github.com/kf0wwv/wwvbrx/internal/discipline"
)

func main() {
	calibDevicePrefix := pflag.String("calib-device-prefix", "wwvbrx-nvram", "udev sysname prefix of the calibration NVRAM device")
	reset := pflag.Bool("reset", false, "overwrite the stored record with compile-time nominal values")
	pflag.Parse()

	log := diag.Default()

	f, err := udevstore.Find(*calibDevicePrefix, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wwvbcal: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if *reset {
		if err := calibration.PersistNow(f, discipline.Nominal(), log); err != nil {
			fmt.Fprintf(os.Stderr, "wwvbcal: reset failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("calibration reset to compile-time nominal values")
		return
	}

	params, report := calibration.Load(f, log)
	fmt.Printf("version read:   %d\n", report.VersionRead)
	fmt.Printf("used defaults:  %v\n", report.UsedDefaults)
	fmt.Printf("upgraded (v1):  %v\n", report.Converted)
	fmt.Printf("whole cycles:   %d\n", params.Whole)
	fmt.Printf("frac numerator: %d / %d\n", params.Frac, discipline.Denom)
	fmt.Printf("scaled counts:  %d\n", params.Scaled())
}
