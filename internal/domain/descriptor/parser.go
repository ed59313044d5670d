package descriptor

import "strings"

// maxUnwrapDepth bounds how many times a line may be base64-unwrapped and
// re-parsed. One level covers the wrapping providers actually emit; the
// bound keeps crafted input from recursing.
const maxUnwrapDepth = 1

// Parse extracts every recognizable proxy descriptor from subscription
// text. The body may be plain descriptor lines, a base64 wrapping of them,
// or a Clash YAML document. Lines that parse to nothing are skipped; Parse
// never fails. The result is deduplicated, first occurrence wins.
func Parse(text string) []Descriptor {
	trimmed := strings.TrimSpace(text)
	if decoded, ok := decodeBase64(trimmed); ok && isText(decoded) && looksLikeSubscription(decoded) {
		trimmed = decoded
	}

	list := parseLines(trimmed, maxUnwrapDepth)
	if len(list) == 0 && strings.Contains(trimmed, "proxies:") {
		list = parseClash(trimmed)
	}
	return Dedup(list)
}

func parseLines(text string, depth int) []Descriptor {
	var out []Descriptor
	for _, line := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	}) {
		out = append(out, parseLine(line, depth)...)
	}
	return out
}

// parseLine parses a single subscription line. Unrecognized lines get one
// bounded chance to be a base64 wrapping of further lines.
func parseLine(line string, depth int) []Descriptor {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "vmess://"):
		if d, ok := parseVMess(line); ok {
			return []Descriptor{d}
		}
	case strings.HasPrefix(lower, "vless://"):
		if d, ok := parseURIScheme(line, SchemeVLess); ok {
			return []Descriptor{d}
		}
	case strings.HasPrefix(lower, "trojan://"):
		if d, ok := parseURIScheme(line, SchemeTrojan); ok {
			return []Descriptor{d}
		}
	case strings.HasPrefix(lower, "ss://"):
		if d, ok := parseSS(line); ok {
			return []Descriptor{d}
		}
	default:
		if depth > 0 {
			if decoded, ok := decodeBase64(line); ok && isText(decoded) {
				return parseLines(decoded, depth-1)
			}
		}
	}
	return nil
}
