// Package serialdiag writes diagnostic bytes (decoded frame summaries,
// acquisition-state transitions) to a serial port, adapted from the
// teacher's serial_port.go.
package serialdiag

import (
	"fmt"

	"github.com/pkg/term"

	"github.com/kf0wwv/wwvbrx/internal/diag"
)

// Writer wraps an open serial port, implementing io.Writer so it can
// back a diag.Logger or be written to directly.
type Writer struct {
	fd *term.Term
}

// Open opens devicename at baud (0 leaves the current speed alone) in
// raw mode, the way the teacher's serial_port_open does for its KISS
// byte stream.
func Open(devicename string, baud int) (*Writer, error) {
	fd, err := term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("serialdiag: opening %s: %w", devicename, err)
	}

	switch baud {
	case 0:
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		if err := fd.SetSpeed(baud); err != nil {
			return nil, fmt.Errorf("serialdiag: setting speed %d on %s: %w", baud, devicename, err)
		}
	default:
		return nil, fmt.Errorf("serialdiag: unsupported speed %d", baud)
	}

	return &Writer{fd: fd}, nil
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.fd.Write(p)
	if err != nil {
		return n, fmt.Errorf("serialdiag: write: %w", err)
	}
	return n, nil
}

// ReadByte blocks for a single byte from the port, for a serial command
// channel (calibration reset, manual resync) alongside the write path.
func (w *Writer) ReadByte() (byte, error) {
	buf := make([]byte, 1)
	n, err := w.fd.Read(buf)
	if n != 1 {
		return 0, fmt.Errorf("serialdiag: read: %w", err)
	}
	return buf[0], nil
}

// Close closes the underlying port.
func (w *Writer) Close() error {
	return w.fd.Close()
}

// NewLogger builds a diag.Logger that writes to an open serial port
// instead of stderr, for a headless deployment without a local console.
func NewLogger(w *Writer, level diag.Level) *diag.Logger {
	return diag.New(w, level)
}
