package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindUnavailable covers missing credentials and unreachable or misconfigured backends.
	KindUnavailable
	KindRateLimited
	KindTransient
	KindInvalidRequest
	KindMalformedOutput
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate_limited"
	case KindTransient:
		return "transient"
	case KindInvalidRequest:
		return "invalid_request"
	case KindMalformedOutput:
		return "malformed_output"
	default:
		return "unknown"
	}
}

// Error is the classified failure every provider returns.
type Error struct {
	Kind       Kind
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(provider string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	return KindUnknown
}

func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindRateLimited, KindTransient:
		return true
	default:
		return false
	}
}

func KindFromStatus(status int) Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnavailable
	case status == http.StatusRequestTimeout ||
		status == http.StatusInternalServerError ||
		status == http.StatusBadGateway ||
		status == http.StatusServiceUnavailable ||
		status == http.StatusGatewayTimeout:
		return KindTransient
	case status >= 400 && status < 500:
		return KindInvalidRequest
	default:
		return KindUnknown
	}
}

// ClassifyTransport classifies errors raised before any HTTP status was read.
func ClassifyTransport(provider string, err error) *Error {
	if errors.Is(err, context.Canceled) {
		return NewError(provider, KindUnknown, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(provider, KindTransient, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewError(provider, KindTransient, err)
	}
	return NewError(provider, KindUnavailable, err)
}
