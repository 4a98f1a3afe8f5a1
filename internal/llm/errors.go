package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

// ErrorKind is the coarse failure category reported by the AI boundary
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindUnauthorized
	KindRateLimited
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network"
	case KindUnauthorized:
		return "Unauthorized"
	case KindRateLimited:
		return "RateLimited"
	case KindServer:
		return "Server"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a classified provider failure
type Error struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int // 0 when the request never got an HTTP response
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (%s, HTTP %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// statusCodeRegex matches the "status code: 429" fragment OpenAI-compatible clients print
var statusCodeRegex = regexp.MustCompile(`status code: (\d{3})`)

// NewError classifies a raw client error. Context cancellation is returned
// unchanged so callers can tell a user abort from a provider failure.
func NewError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}

	e := &Error{Provider: provider, Err: err}
	if code, ok := statusCodeOf(err); ok {
		e.StatusCode = code
		e.Kind = kindForStatus(code)
		return e
	}

	e.Kind = KindServer
	if isNetworkError(err) {
		e.Kind = KindNetwork
	}
	return e
}

func kindForStatus(code int) ErrorKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindServer
	}
}

func statusCodeOf(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code != 0 {
		return apiErrPtr.Code, true
	}

	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.HTTPStatusCode(), true
	}

	if m := statusCodeRegex.FindStringSubmatch(err.Error()); m != nil {
		code, convErr := strconv.Atoi(m[1])
		if convErr == nil {
			return code, true
		}
	}
	return 0, false
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, keyword := range []string{"connection refused", "no such host", "timeout", "connection reset", "network is unreachable"} {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}
