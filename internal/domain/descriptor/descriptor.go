// Package descriptor turns raw proxy-subscription text into structured,
// deduplicated server descriptors. Parsing is pure: no network I/O, and
// malformed input never produces an error, only fewer descriptors.
package descriptor

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"sonar/internal/shared/utils/setutil"
)

// Scheme identifies the proxy protocol family of a descriptor.
type Scheme string

const (
	SchemeVMess  Scheme = "vmess"
	SchemeVLess  Scheme = "vless"
	SchemeTrojan Scheme = "trojan"
	SchemeSS     Scheme = "ss"
)

// Transport identifies how the descriptor expects the stream to be carried,
// which in turn selects the probe strategy.
type Transport string

const (
	// TransportTCP is a raw stream; reachability is a connect (plus TLS
	// handshake when the descriptor asks for TLS).
	TransportTCP Transport = "tcp"
	// TransportWS expects an HTTP upgrade; reachability additionally
	// requires the server to answer the upgrade request.
	TransportWS Transport = "ws"
)

// Descriptor is one parsed proxy server entry. It is immutable once parsed;
// every field the prober depends on is validated or defaulted at parse time.
type Descriptor struct {
	Scheme      Scheme
	Host        string
	Port        uint16
	DisplayName string
	UseTLS      bool
	Transport   Transport
	Path        string
	HostHeader  string
	SNI         string
	ALPN        string

	// Raw is the original descriptor line, kept for traceability.
	Raw string
}

// Addr returns the dial target in host:port form, bracketing IPv6 literals.
func (d Descriptor) Addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(int(d.Port)))
}

// Key is the identity used for deduplication. Two descriptors with the same
// scheme, host, port, and display name are considered the same server.
// The display name is already normalized (percent-decoded, markup stripped,
// whitespace collapsed, NFC) by the time a descriptor is constructed.
func (d Descriptor) Key() string {
	return fmt.Sprintf("%s|%s|%d|%s", d.Scheme, strings.ToLower(d.Host), d.Port, d.DisplayName)
}

// defaultName fills the display name when the source carries none.
func (d Descriptor) defaultName() string {
	return d.Addr()
}

// normalize applies the field defaults shared by every scheme parser.
func (d Descriptor) normalize() Descriptor {
	d.DisplayName = cleanName(d.DisplayName)
	if d.DisplayName == "" {
		d.DisplayName = d.defaultName()
	}
	if d.Transport == "" {
		d.Transport = TransportTCP
	}
	return d
}

// Dedup collapses descriptors by Key, keeping the first occurrence and
// preserving first-seen order.
func Dedup(list []Descriptor) []Descriptor {
	seen := setutil.NewStringSetWithCap(len(list))
	out := make([]Descriptor, 0, len(list))
	for _, d := range list {
		if seen.AddIfAbsent(d.Key()) {
			out = append(out, d)
		}
	}
	return out
}

// toPort parses a port string, rejecting anything outside 1-65535.
func toPort(s string) (uint16, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("port %d out of range", n)
	}
	return uint16(n), nil
}
