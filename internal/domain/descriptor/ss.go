package descriptor

import (
	"net/url"
	"strings"
)

// parseSS handles ss:// links in both wire forms: the legacy shape where
// everything after the scheme is one base64 blob (method:password@host:port)
// and the SIP002 shape where only the userinfo is encoded and the host and
// port are plain. Credentials are irrelevant to reachability, so they are
// parsed past rather than decoded.
func parseSS(line string) (Descriptor, bool) {
	rest := strings.TrimSpace(line[len("ss://"):])

	var name string
	if idx := strings.Index(rest, "#"); idx >= 0 {
		frag := rest[idx+1:]
		if unescaped, err := url.PathUnescape(frag); err == nil {
			name = unescaped
		} else {
			name = frag
		}
		rest = rest[:idx]
	}
	// Plugin options in the query do not affect the dial target.
	if idx := strings.Index(rest, "?"); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" {
		return Descriptor{}, false
	}

	if !strings.Contains(rest, "@") {
		decoded, ok := decodeBase64(rest)
		if !ok {
			return Descriptor{}, false
		}
		rest = decoded
	}

	at := strings.LastIndex(rest, "@")
	if at < 0 || at == len(rest)-1 {
		return Descriptor{}, false
	}
	host, portStr, ok := splitHostPort(rest[at+1:])
	if !ok {
		return Descriptor{}, false
	}

	// Some providers append junk after the digits; take the leading run.
	if cut := strings.IndexFunc(portStr, func(r rune) bool {
		return r < '0' || r > '9'
	}); cut >= 0 {
		portStr = portStr[:cut]
	}
	port, err := toPort(portStr)
	if err != nil {
		return Descriptor{}, false
	}

	d := Descriptor{
		Scheme:      SchemeSS,
		Host:        host,
		Port:        port,
		DisplayName: name,
		Raw:         line,
	}
	return d.normalize(), true
}

// splitHostPort separates host:port, tolerating bracketed IPv6 literals.
func splitHostPort(s string) (host, port string, ok bool) {
	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return "", "", false
		}
		host = s[1:end]
		rest := s[end+1:]
		if !strings.HasPrefix(rest, ":") {
			return "", "", false
		}
		return host, rest[1:], host != ""
	}
	idx := strings.LastIndex(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}
