// Package probe performs the per-server reachability checks. A probe is a
// single bounded handshake against one descriptor: TCP connect, optionally
// a TLS handshake, and for websocket transports an HTTP upgrade round trip.
package probe

import (
	"context"
	"time"

	"sonar/internal/domain/descriptor"
)

// Strategy names how a descriptor is probed.
type Strategy string

const (
	// StrategyStream verifies the transport stream: TCP connect plus a
	// TLS handshake when the descriptor carries TLS.
	StrategyStream Strategy = "stream"
	// StrategyUpgrade additionally requires the server to answer a
	// websocket upgrade request on the descriptor's path.
	StrategyUpgrade Strategy = "upgrade"
)

// SelectStrategy maps a descriptor's transport to its probe strategy.
func SelectStrategy(d descriptor.Descriptor) Strategy {
	if d.Transport == descriptor.TransportWS {
		return StrategyUpgrade
	}
	return StrategyStream
}

// Prober measures whether one descriptor's endpoint completes its handshake
// within the timeout.
type Prober interface {
	Probe(ctx context.Context, d descriptor.Descriptor, timeout time.Duration) descriptor.Outcome
}

// NetProber probes endpoints over the real network.
type NetProber struct{}

// NewNetProber creates a network prober.
func NewNetProber() *NetProber {
	return &NetProber{}
}

// Probe runs the strategy selected for the descriptor and reports the
// outcome with the wall time spent. Failed probes still carry the elapsed
// time before the failure.
func (p *NetProber) Probe(ctx context.Context, d descriptor.Descriptor, timeout time.Duration) descriptor.Outcome {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var err error
	switch SelectStrategy(d) {
	case StrategyUpgrade:
		err = probeUpgrade(probeCtx, d, timeout)
	default:
		err = probeStream(probeCtx, d)
	}
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return descriptor.Outcome{ElapsedMS: elapsed, Error: classifyError(err)}
	}
	return descriptor.Outcome{OK: true, ElapsedMS: elapsed}
}
