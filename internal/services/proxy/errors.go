package proxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// ErrMissingToken is returned when no proxy token is configured.
var ErrMissingToken = errors.New("CLAUDE_USAGE_PROXY_TOKEN not set. Configure it in env or .env file.")

const rateLimitedMarker = "Rate limited"

// Error is a proxy failure carrying a message suitable for end users.
type Error struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err stems from the proxy's rate limiter.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var pe *Error
	if errors.As(err, &pe) && pe.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(err.Error(), rateLimitedMarker)
}

func timeoutError(err error) *Error {
	return &Error{
		Err:     err,
		Message: "Proxy timeout — server may be waking up (Render cold start). Retry in 1-2 min.",
	}
}

func httpError(resp *http.Response) *Error {
	return &Error{
		Message:    fmt.Sprintf("Proxy HTTP %d: %s", resp.StatusCode, statusText(resp)),
		StatusCode: resp.StatusCode,
	}
}

func envelopeError(msg string) *Error {
	return &Error{Message: "Proxy error: " + msg}
}

func connectionError(err error) *Error {
	return &Error{
		Err:     err,
		Message: "Proxy connection error: " + err.Error(),
	}
}

// transportError classifies an error returned by the HTTP client.
func transportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return timeoutError(err)
	}
	return connectionError(err)
}

// statusText returns the reason phrase of resp, e.g. "Bad Gateway".
func statusText(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
