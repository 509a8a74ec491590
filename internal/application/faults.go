package application

import (
	"context"
	"time"
)

// FaultInjection configures the deliberate failures used to exercise error paths end to end.
type FaultInjection struct {
	Enabled bool
	// LookupSentinel fails any place search equal to it, ignoring case.
	LookupSentinel string
	// RouteSentinel fails any route that contains it, matched exactly.
	RouteSentinel string
}

// DefaultFaultInjection returns the sentinels the front end is built around.
func DefaultFaultInjection() FaultInjection {
	return FaultInjection{Enabled: true, LookupSentinel: "fail", RouteSentinel: "Dijon"}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
