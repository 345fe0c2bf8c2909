package service

import (
	"context"
	"time"
)

// Gateway paths used by the host actions.
const (
	PathSendMessage = "/messages/send"
	PathRegenerate  = "/messages/regenerate"
	PathUpdateReq   = "/requests/update"
)

// Gateway is the outbound boundary for host actions.  Return values other
// than the error are never used by callers.
type Gateway interface {
	Send(ctx context.Context, path string, payload any) error
}

// SimulatedGateway acknowledges every call after a fixed delay.  It stands
// in for the channel-manager API and cannot fail except by cancellation.
type SimulatedGateway struct {
	Delay time.Duration
}

// Send waits for Delay and returns nil, or returns ctx.Err() when the
// caller goes away first.
func (g SimulatedGateway) Send(ctx context.Context, path string, payload any) error {
	if g.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
