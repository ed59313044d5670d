package descriptor

import (
	"strings"

	"github.com/tidwall/gjson"
)

// parseVMess handles vmess:// links. The payload after the scheme is a JSON
// object, usually base64-wrapped but some tooling emits it bare. Port and
// numeric fields arrive as either JSON strings or numbers, so fields are
// read through gjson rather than a fixed struct.
func parseVMess(line string) (Descriptor, bool) {
	payload := strings.TrimSpace(line[len("vmess://"):])
	if payload == "" {
		return Descriptor{}, false
	}

	if !strings.HasPrefix(payload, "{") {
		decoded, ok := decodeBase64(payload)
		if !ok {
			return Descriptor{}, false
		}
		payload = decoded
	}
	if !gjson.Valid(payload) {
		return Descriptor{}, false
	}
	obj := gjson.Parse(payload)

	host := strings.TrimSpace(obj.Get("add").String())
	if host == "" {
		return Descriptor{}, false
	}

	port := uint16(443)
	if p := obj.Get("port"); p.Exists() && strings.TrimSpace(p.String()) != "" {
		parsed, err := toPort(p.String())
		if err != nil {
			return Descriptor{}, false
		}
		port = parsed
	}

	d := Descriptor{
		Scheme:      SchemeVMess,
		Host:        host,
		Port:        port,
		DisplayName: obj.Get("ps").String(),
		HostHeader:  strings.TrimSpace(obj.Get("host").String()),
		SNI:         strings.TrimSpace(obj.Get("sni").String()),
		ALPN:        strings.TrimSpace(obj.Get("alpn").String()),
		Raw:         line,
	}

	switch strings.ToLower(obj.Get("tls").String()) {
	case "tls", "reality":
		d.UseTLS = true
	}
	if strings.EqualFold(obj.Get("net").String(), "ws") {
		d.Transport = TransportWS
		d.Path = obj.Get("path").String()
	}

	return d.normalize(), true
}
