// Package udevstore locates the calibration backing device (an EEPROM
// or battery-backed NVRAM node) via jochenvg/go-udev device discovery
// and opens it as a calibration.Store. Declared in the teacher's go.mod
// with no in-tree caller; this is the component that exercises it,
// standing in for the teacher's cgo libudev calls in cm108.go.
package udevstore

import (
	"fmt"
	"os"

	"github.com/jochenvg/go-udev"

	"github.com/kf0wwv/wwvbrx/internal/diag"
)

// Subsystem is the udev subsystem calibration-capable devices register
// under on the reference hardware (a small nvmem/EEPROM device node).
const Subsystem = "nvmem"

// Find locates the first device on Subsystem whose sysname matches
// sysnamePrefix and opens its /dev node read-write, returning an
// *os.File (which satisfies calibration.Store via ReadAt/WriteAt
// directly).
func Find(sysnamePrefix string, log *diag.Logger) (*os.File, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem(Subsystem); err != nil {
		return nil, fmt.Errorf("udevstore: matching subsystem %s: %w", Subsystem, err)
	}

	devices, err := enum.Devices()
	if err != nil {
		return nil, fmt.Errorf("udevstore: enumerating %s devices: %w", Subsystem, err)
	}

	for _, dev := range devices {
		name := dev.Sysname()
		if len(name) < len(sysnamePrefix) || name[:len(sysnamePrefix)] != sysnamePrefix {
			continue
		}
		devnode := dev.Devnode()
		if devnode == "" {
			continue
		}
		f, err := os.OpenFile(devnode, os.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("udevstore: opening %s: %w", devnode, err)
		}
		if log != nil {
			log.Info("udevstore: calibration store located", "device", devnode)
		}
		return f, nil
	}

	return nil, fmt.Errorf("udevstore: no %s device matching %q found", Subsystem, sysnamePrefix)
}
