// Package resilience classifies collaborator failures for warning records.
// Nothing here retries: a failed search call is skipped, and the
// classification only tells the operator whether trying again later is
// likely to help.
package resilience

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Kind is the failure class recorded on a warning.
type Kind string

const (
	KindTransient Kind = "transient"
	KindPermanent Kind = "permanent"
	KindCanceled  Kind = "canceled"
)

// StatusCoder is implemented by vendor API errors that carry an HTTP status.
type StatusCoder interface {
	HTTPStatus() int
}

// Classify returns the failure class of err. A nil error is permanent.
func Classify(err error) Kind {
	if err == nil {
		return KindPermanent
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if IsTransient(err) {
		return KindTransient
	}
	return KindPermanent
}

// IsTransient reports whether err is likely to succeed on a later attempt:
// rate limits and 5xx statuses, network timeouts, and connection resets.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		return IsTransientHTTPStatus(sc.HTTPStatus())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// Wrapped errors from HTTP clients sometimes lose their type.
	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsTransientHTTPStatus reports whether an HTTP status indicates a
// temporary server-side condition.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
