package rank

import "errors"

var (
	// ErrMissingAPIKey is returned when the client is constructed without a credential
	ErrMissingAPIKey = errors.New("rank lookup API key is required")
	// ErrLookupFailed is returned when the search API request fails
	ErrLookupFailed = errors.New("rank lookup failed")
	// ErrUnexpectedStatus is returned when the search API returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected rank lookup response status")
)
