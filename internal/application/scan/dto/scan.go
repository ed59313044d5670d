package dto

import "sonar/internal/domain/descriptor"

// ScanRequest is the body of POST /api/scan. Sources may mix subscription
// URLs with inline descriptor text; both feed the same parse.
type ScanRequest struct {
	Sources     []string `json:"sources" validate:"max=64,dive,required" example:"https://provider.example.com/sub" description:"Subscription URLs or inline descriptor text"`
	Text        string   `json:"text" description:"Raw descriptor lines scanned alongside sources"`
	TimeoutMS   int      `json:"timeout_ms" example:"3000" description:"Per-probe timeout in milliseconds, clamped to 500-10000, default 3000"`
	Concurrency int      `json:"concurrency" example:"25" description:"Probes in flight at once, clamped to 1-100, default 25"`
}

// ScanResultDTO is one reachable server in the scan response. Empty-valued
// fields stay in the payload so consumers get a stable shape.
type ScanResultDTO struct {
	Scheme      string `json:"scheme" example:"vless" description:"Proxy protocol"`
	Host        string `json:"host" example:"hk1.example.com" description:"Server host"`
	Port        uint16 `json:"port" example:"443" description:"Server port"`
	DisplayName string `json:"display_name" example:"HK 1" description:"Subscription display name, scrubbed"`
	UseTLS      bool   `json:"use_tls" example:"true" description:"Whether the probe performed a TLS handshake"`
	Transport   string `json:"transport" example:"ws" enums:"tcp,ws" description:"Probe transport"`
	Path        string `json:"path" example:"/tunnel" description:"Websocket path, if any"`
	HostHeader  string `json:"host_header" example:"cdn.example.com" description:"Host header override for the upgrade request"`
	SNI         string `json:"sni" example:"hk1.example.com" description:"TLS server name override"`
	ALPN        string `json:"alpn" example:"h2,http/1.1" description:"Comma separated ALPN protocols"`
	OK          bool   `json:"ok" example:"true" description:"Probe outcome"`
	ElapsedMS   int64  `json:"elapsed_ms" example:"87" description:"Probe latency in milliseconds"`
	Error       string `json:"error" example:"" description:"Failure classification, empty on success"`
}

// ScanResponse summarizes one scan: how many descriptors were found, how
// many answered, and the reachable servers ranked fastest first.
type ScanResponse struct {
	Total     int             `json:"total" example:"12" description:"Descriptors found after deduplication"`
	Reachable int             `json:"reachable" example:"3" description:"Descriptors that completed their probe"`
	TimeoutMS int             `json:"timeout_ms" example:"3000" description:"Effective per-probe timeout used"`
	Results   []ScanResultDTO `json:"results" description:"Reachable servers, ascending latency"`
}

// FromScanResult maps a probe result to its transport shape.
func FromScanResult(r descriptor.ScanResult) ScanResultDTO {
	return ScanResultDTO{
		Scheme:      string(r.Descriptor.Scheme),
		Host:        r.Descriptor.Host,
		Port:        r.Descriptor.Port,
		DisplayName: r.Descriptor.DisplayName,
		UseTLS:      r.Descriptor.UseTLS,
		Transport:   string(r.Descriptor.Transport),
		Path:        r.Descriptor.Path,
		HostHeader:  r.Descriptor.HostHeader,
		SNI:         r.Descriptor.SNI,
		ALPN:        r.Descriptor.ALPN,
		OK:          r.Outcome.OK,
		ElapsedMS:   r.Outcome.ElapsedMS,
		Error:       r.Outcome.Error,
	}
}

// FromScanResults maps a result slice, preserving order.
func FromScanResults(results []descriptor.ScanResult) []ScanResultDTO {
	out := make([]ScanResultDTO, len(results))
	for i, r := range results {
		out[i] = FromScanResult(r)
	}
	return out
}
