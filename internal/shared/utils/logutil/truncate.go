// Package logutil provides helpers for keeping log output bounded.
package logutil

// TruncateForLog truncates a string to maxLen bytes for safe logging.
// Subscription bodies and descriptor lines are attacker-controlled and can
// be arbitrarily long; log records should only ever carry a prefix of them.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
