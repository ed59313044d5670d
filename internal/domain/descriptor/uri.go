package descriptor

import (
	"net/url"
	"strings"
)

// parseURIScheme handles the vless:// and trojan:// link forms, which share
// a standard URI shape: credentials in the userinfo, server in the
// authority, transport options in the query, display name in the fragment.
func parseURIScheme(line string, scheme Scheme) (Descriptor, bool) {
	u, err := url.Parse(line)
	if err != nil {
		return Descriptor{}, false
	}

	host := u.Hostname()
	if host == "" {
		return Descriptor{}, false
	}

	port := uint16(443)
	if p := u.Port(); p != "" {
		parsed, perr := toPort(p)
		if perr != nil {
			return Descriptor{}, false
		}
		port = parsed
	}

	q := u.Query()
	d := Descriptor{
		Scheme:      scheme,
		Host:        host,
		Port:        port,
		DisplayName: u.Fragment,
		HostHeader:  strings.TrimSpace(q.Get("host")),
		SNI:         strings.TrimSpace(q.Get("sni")),
		ALPN:        strings.TrimSpace(q.Get("alpn")),
		Raw:         line,
	}

	// An explicit security parameter decides TLS; without one, port 443
	// is taken as the TLS convention these links follow.
	switch strings.ToLower(q.Get("security")) {
	case "tls", "reality":
		d.UseTLS = true
	case "":
		d.UseTLS = port == 443
	}

	if strings.EqualFold(q.Get("type"), "ws") {
		d.Transport = TransportWS
		d.Path = q.Get("path")
	}

	return d.normalize(), true
}
