// Package statusannounce advertises the receiver's diagnostic status
// endpoint over mDNS/DNS-SD, adapted from the teacher's dns_sd.go (which
// announces its KISS-over-TCP service the same way).
package statusannounce

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"

	"github.com/kf0wwv/wwvbrx/internal/diag"
)

// ServiceType is the DNS-SD service type this receiver advertises, the
// WWVB-core analogue of the teacher's "_kiss-tnc._tcp".
const ServiceType = "_wwvbrx._tcp"

// Announcer wraps an active dnssd responder advertising one service
// instance.
type Announcer struct {
	responder dnssd.Responder
	cancel    context.CancelFunc
}

// Start announces name on port (the internal/status HTTP server's
// listening port), returning an Announcer the caller must Stop. Errors
// from the background responder loop are logged, not returned: a failed
// mDNS announcement should not prevent the receiver from running (spec
// carries the same "non-fatal, log and continue" policy for the
// calibration store).
func Start(name string, port int, log *diag.Logger) (*Announcer, error) {
	cfg := dnssd.Config{
		Name: name,
		Type: ServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("statusannounce: creating service: %w", err)
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("statusannounce: creating responder: %w", err)
	}

	if _, err := rp.Add(sv); err != nil {
		return nil, fmt.Errorf("statusannounce: adding service: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Announcer{responder: rp, cancel: cancel}

	go func() {
		if err := rp.Respond(ctx); err != nil && ctx.Err() == nil {
			if log != nil {
				log.Error("statusannounce: responder stopped", "error", err)
			}
		}
	}()

	if log != nil {
		log.Info("statusannounce: announcing", "name", name, "port", port)
	}
	return a, nil
}

// Stop halts the mDNS responder.
func (a *Announcer) Stop() {
	a.cancel()
}
