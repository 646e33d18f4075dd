package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies a provider failure for the retry decorator.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx responses.
	KindUnavailable ErrorKind = iota
	// KindRateLimited is a 429 from the provider.
	KindRateLimited
	// KindInvalidResponse means the output did not match the schema.
	KindInvalidResponse
	// KindTruncated means generation hit MaxTokens mid-answer.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate-limited"
	case KindInvalidResponse:
		return "invalid-response"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is returned by every provider in this package.
type Error struct {
	Kind     ErrorKind
	Provider string

	// RetryAfter is the server's requested wait for KindRateLimited.
	RetryAfter time.Duration

	// Content is the offending output for KindInvalidResponse and
	// KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	prefix := "llm"
	if e.Provider != "" {
		prefix = e.Provider
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", prefix, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", prefix, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// fromStatus maps an HTTP status from a provider SDK error. Anything that
// is not a 429 is treated as the provider being unavailable.
func fromStatus(provider string, status int, err error) *Error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Provider: provider, Err: err}
	}
	return &Error{Kind: KindUnavailable, Provider: provider, Err: err}
}

func invalidResponse(provider string, content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidResponse, Provider: provider, Content: content, Err: err}
}
