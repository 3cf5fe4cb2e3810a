// Command wwvbrx runs the WWVB receiver core against real GPIO/audio
// front-end hardware, wiring together the internal/receiver orchestrator,
// calibration persistence, and the diagnostic status endpoint.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/kf0wwv/wwvbrx/adapter/gpioline"
	"github.com/kf0wwv/wwvbrx/adapter/statusannounce"
	"github.com/kf0wwv/wwvbrx/adapter/udevstore"
	"github.com/kf0wwv/wwvbrx/internal/calibration"
	"github.com/kf0wwv/wwvbrx/internal/config"
	"github.com/kf0wwv/wwvbrx/internal/diag"
	"github.com/kf0wwv/wwvbrx/internal/discipline"
	"github.com/kf0wwv/wwvbrx/internal/localtime"
	"github.com/kf0wwv/wwvbrx/internal/receiver"
	"github.com/kf0wwv/wwvbrx/internal/status"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	chip := pflag.String("gpio-chip", "gpiochip0", "GPIO chip for the demodulated input line")
	bitLine := pflag.Int("bit-line", 17, "GPIO line carrying the demodulated envelope")
	tickLine := pflag.Int("tick-line", 27, "GPIO line carrying the 60Hz tick reference")
	tickOutputLine := pflag.Int("tick-output-line", -1, "GPIO line to drive as a disciplined tick output, closing the H->L loop (-1 disables)")
	calibDevicePrefix := pflag.String("calib-device-prefix", "wwvbrx-nvram", "udev sysname prefix of the calibration NVRAM device")
	statusAddr := pflag.String("status-addr", ":8060", "address to serve the diagnostic status endpoint on")
	announce := pflag.Bool("announce", true, "advertise the status endpoint via mDNS/DNS-SD")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()

	level := diag.LevelInfo
	if *verbose {
		level = diag.LevelDebug
	}
	log := diag.New(os.Stderr, level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config, using defaults", "err", err)
	}

	var store calibration.Store
	params := discipline.Nominal()
	if f, err := udevstore.Find(*calibDevicePrefix, log); err != nil {
		log.Error("calibration store unavailable, running with compile-time nominal period", "err", err)
	} else {
		store = f
		defer f.Close()

		var report calibration.LoadReport
		params, report = calibration.Load(store, log)
		log.Info("calibration loaded", "versionRead", report.VersionRead, "usedDefaults", report.UsedDefaults, "converted", report.Converted)
	}

	input, err := gpioline.OpenBitLine(*chip, *bitLine)
	if err != nil {
		log.Error("failed to open GPIO input line", "err", err)
		os.Exit(1)
	}
	defer input.Close()

	dev := receiver.New(input, params, cfg.AcquisitionConfig(), log)

	tick := gpioline.OpenTickLine(*chip, *tickLine)
	tick.OnTick(dev.OnTick())
	if err := tick.Start(); err != nil {
		log.Error("failed to start tick source", "err", err)
		os.Exit(1)
	}
	defer tick.Stop()

	stopPersist := make(chan struct{})
	defer close(stopPersist)

	if *tickOutputLine >= 0 {
		out, err := gpioline.OpenTickOutput(*chip, *tickOutputLine)
		if err != nil {
			log.Error("failed to open tick output line, H->L discipline loop disabled", "err", err)
		} else {
			defer out.Close()
			var cadence discipline.Cadence
			go out.Drive(&cadence, dev.ClockParams, log, stopPersist)
		}
	}

	srv := status.NewServer(dev)
	httpServer := &http.Server{Addr: *statusAddr, Handler: srv}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("status server stopped", "err", err)
		}
	}()

	if *announce {
		a, err := statusannounce.Start(fmt.Sprintf("wwvbrx-%s", *chip), statusPort(*statusAddr), log)
		if err != nil {
			log.Error("mDNS announcement failed, continuing without it", "err", err)
		} else {
			defer a.Stop()
		}
	}

	go persistLoop(dev, store, cfg, log, stopPersist)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
}

// persistLoop drains the params-unsaved, tick-interval-changed, and
// second-changed flags on a fixed poll interval, the main-loop half of
// the single-producer/single-consumer discipline the tick context's
// flag-setting observes. Polling rather than blocking on a channel
// keeps the tick context free of any synchronization beyond the atomic
// flag itself. Reprogramming the live tick output's cadence happens in
// adapter/gpioline.TickOutput.Drive, which reads dev.ClockParams
// directly every period; ConsumeTickIntervalChanged is only consumed
// here for diagnostic logging of when a discipline.Adjust landed.
func persistLoop(dev *receiver.Device, store calibration.Store, cfg config.Params, log *diag.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if store != nil && dev.ConsumeParamsUnsaved() {
				if err := calibration.PersistNow(store, dev.ClockParams(), log); err != nil {
					log.Error("calibration persist failed", "err", err)
				} else {
					log.Info("calibration persisted", "scaled", dev.ClockParams().Scaled())
				}
			}
			if dev.ConsumeTickIntervalChanged() {
				log.Debug("clock params adjusted", "scaled", dev.ClockParams().Scaled())
			}
			if dev.ConsumeSecondChanged() {
				local := localtime.Local(dev.TimeOfDay(), cfg)
				log.Debug("local time", "local", local.Format(time.RFC3339))
			}
		}
	}
}

func statusPort(addr string) int {
	idx := strings.LastIndexByte(addr, ':')
	if idx < 0 {
		return 0
	}
	port, _ := strconv.Atoi(addr[idx+1:])
	return port
}
