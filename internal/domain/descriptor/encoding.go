package descriptor

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// decodeBase64 decodes subscription payloads that are base64 in any of the
// common variants: standard or URL alphabet, padded or not, with embedded
// whitespace. Providers are sloppy about padding, so the input is stripped
// and re-padded before trying the padded codecs.
func decodeBase64(s string) (string, bool) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	if compact == "" {
		return "", false
	}

	stripped := strings.TrimRight(compact, "=")
	padded := stripped
	if m := len(stripped) % 4; m != 0 {
		padded += strings.Repeat("=", 4-m)
	}

	for _, attempt := range []struct {
		enc *base64.Encoding
		in  string
	}{
		{base64.StdEncoding, padded},
		{base64.URLEncoding, padded},
		{base64.RawStdEncoding, stripped},
		{base64.RawURLEncoding, stripped},
	} {
		if out, err := attempt.enc.DecodeString(attempt.in); err == nil {
			return string(out), true
		}
	}
	return "", false
}

// isText reports whether decoded bytes look like textual subscription
// content rather than binary that happened to decode. Control characters
// other than line and tab whitespace disqualify the payload.
func isText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

// looksLikeSubscription reports whether decoded text plausibly contains
// descriptor lines, so that a base64-looking line that decodes to garbage
// is not mistaken for a subscription document.
func looksLikeSubscription(s string) bool {
	return strings.Contains(s, "://") || strings.ContainsAny(s, "\r\n")
}
