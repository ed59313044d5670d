package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"sonar/internal/domain/descriptor"
)

// probeUpgrade performs the websocket upgrade handshake on the descriptor's
// path. The endpoint counts as reachable when the dial succeeds or the
// server answers 101 Switching Protocols; any other HTTP answer is an
// explicit rejection and the status line becomes the failure detail.
func probeUpgrade(ctx context.Context, d descriptor.Descriptor, timeout time.Duration) error {
	dialer := &websocket.Dialer{
		HandshakeTimeout: timeout,
		NetDialContext:   (&net.Dialer{}).DialContext,
	}
	if d.UseTLS {
		dialer.TLSClientConfig = tlsConfig(d)
	}

	header := http.Header{}
	if h := hostHeader(d); h != "" {
		header.Set("Host", h)
	}

	conn, resp, err := dialer.DialContext(ctx, upgradeURL(d).String(), header)
	if conn != nil {
		defer conn.Close()
	}
	if resp != nil {
		defer resp.Body.Close()
	}

	if err == nil || (resp != nil && resp.StatusCode == http.StatusSwitchingProtocols) {
		return nil
	}
	if resp != nil {
		return fmt.Errorf("upgrade rejected: %s %s", resp.Proto, resp.Status)
	}
	return err
}

// hostHeader picks the Host override for the upgrade request. Without one
// the request uses the dial address, which is already the descriptor host.
func hostHeader(d descriptor.Descriptor) string {
	if d.HostHeader != "" {
		return d.HostHeader
	}
	return d.SNI
}

func upgradeURL(d descriptor.Descriptor) *url.URL {
	path := d.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path, query, _ := strings.Cut(path, "?")

	scheme := "ws"
	if d.UseTLS {
		scheme = "wss"
	}
	return &url.URL{Scheme: scheme, Host: d.Addr(), Path: path, RawQuery: query}
}
