package descriptor

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type clashWSOpts struct {
	Path    string            `yaml:"path"`
	Headers map[string]string `yaml:"headers"`
}

type clashProxy struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"`
	Server     string      `yaml:"server"`
	Port       string      `yaml:"port"`
	TLS        bool        `yaml:"tls"`
	Network    string      `yaml:"network"`
	SNI        string      `yaml:"sni"`
	ServerName string      `yaml:"servername"`
	ALPN       []string    `yaml:"alpn"`
	WSOpts     clashWSOpts `yaml:"ws-opts"`
}

// parseClash extracts proxies from a Clash-format YAML document. Entries
// are decoded one node at a time so a single malformed proxy does not take
// the rest of the document down with it.
func parseClash(text string) []Descriptor {
	var doc struct {
		Proxies []yaml.Node `yaml:"proxies"`
	}
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}

	var out []Descriptor
	for _, node := range doc.Proxies {
		var p clashProxy
		if err := node.Decode(&p); err != nil {
			continue
		}
		if d, ok := p.toDescriptor(); ok {
			out = append(out, d)
		}
	}
	return out
}

func (p clashProxy) toDescriptor() (Descriptor, bool) {
	var scheme Scheme
	switch strings.ToLower(p.Type) {
	case "vmess":
		scheme = SchemeVMess
	case "vless":
		scheme = SchemeVLess
	case "trojan":
		scheme = SchemeTrojan
	case "ss":
		scheme = SchemeSS
	default:
		return Descriptor{}, false
	}

	host := strings.TrimSpace(p.Server)
	if host == "" {
		return Descriptor{}, false
	}
	port, err := toPort(p.Port)
	if err != nil {
		return Descriptor{}, false
	}

	sni := strings.TrimSpace(p.ServerName)
	if sni == "" {
		sni = strings.TrimSpace(p.SNI)
	}

	d := Descriptor{
		Scheme:      scheme,
		Host:        host,
		Port:        port,
		DisplayName: p.Name,
		SNI:         sni,
		ALPN:        strings.Join(p.ALPN, ","),
	}

	switch scheme {
	case SchemeTrojan:
		// Trojan rides TLS by definition; Clash has no tls knob for it.
		d.UseTLS = true
	case SchemeVMess, SchemeVLess:
		d.UseTLS = p.TLS
	}

	if strings.EqualFold(p.Network, "ws") {
		d.Transport = TransportWS
		d.Path = p.WSOpts.Path
		for k, v := range p.WSOpts.Headers {
			if strings.EqualFold(k, "Host") {
				d.HostHeader = strings.TrimSpace(v)
				break
			}
		}
	}

	return d.normalize(), true
}
