package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strings"
	"syscall"
)

// classifyError folds transport errors into short stable labels so that
// results for the same failure mode compare equal across platforms. Errors
// without a known shape pass through verbatim, which keeps upgrade
// rejection status lines intact.
func classifyError(err error) string {
	if err == nil {
		return ""
	}

	if isTimeoutErr(err) {
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return "dns: no such host"
		}
		return "dns: " + dnsErr.Err
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "connection reset"
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return "unreachable"
	}

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return "tls handshake failed"
	}
	msg := err.Error()
	if strings.Contains(msg, "tls:") || strings.Contains(msg, "handshake failure") {
		return "tls handshake failed"
	}

	return msg
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
