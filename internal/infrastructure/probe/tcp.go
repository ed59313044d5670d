package probe

import (
	"context"
	"crypto/tls"
	"net"
	"strings"

	"sonar/internal/domain/descriptor"
)

// probeStream dials the descriptor's endpoint and, when the descriptor
// carries TLS, completes a handshake on the raw connection. The context
// deadline bounds both steps.
func probeStream(ctx context.Context, d descriptor.Descriptor) error {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", d.Addr())
	if err != nil {
		return err
	}
	defer conn.Close()

	if !d.UseTLS {
		return nil
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}
	tlsConn := tls.Client(conn, tlsConfig(d))
	defer tlsConn.Close()
	return tlsConn.HandshakeContext(ctx)
}

// tlsConfig builds the handshake config for a descriptor. Verification is
// skipped: the probe checks that the handshake completes, not that the
// certificate chain is trusted.
func tlsConfig(d descriptor.Descriptor) *tls.Config {
	cfg := &tls.Config{
		ServerName:         serverName(d),
		InsecureSkipVerify: true,
	}
	if d.ALPN != "" {
		for _, proto := range strings.Split(d.ALPN, ",") {
			if proto = strings.TrimSpace(proto); proto != "" {
				cfg.NextProtos = append(cfg.NextProtos, proto)
			}
		}
	}
	return cfg
}

func serverName(d descriptor.Descriptor) string {
	if d.SNI != "" {
		return d.SNI
	}
	return d.Host
}
