package api

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired indicates a protected call was attempted without a
	// session token. No network request is made.
	ErrAuthRequired = errors.New("authentication required")
	// ErrAuthFailed indicates the backend rejected the session token. Local
	// auth state has already been cleared when this is returned.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrConnectionRequired indicates a platform action was attempted without
	// a YouTube connection token. No network request is made.
	ErrConnectionRequired = errors.New("youtube authorization required")
)

// RateLimitError reports a 429 response from the backend.
type RateLimitError struct {
	RetryAfter int // seconds, from the Retry-After header
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %d seconds", e.RetryAfter)
}

// RequestError reports any other failed request: a non-2xx response, a
// transport failure, or an unreadable response body. Status is zero when the
// request never produced a response.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
