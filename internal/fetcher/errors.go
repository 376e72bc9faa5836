package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when the requested URL is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid URL: must be absolute http or https")
	// ErrTooManyRedirects is returned when a fetch exceeds the redirect limit
	ErrTooManyRedirects = errors.New("too many redirects")
)

// FetchError describes a failed page retrieval. StatusCode is zero when the
// failure happened before a response was received (timeout, DNS, refused).
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

// Unwrap exposes the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}
