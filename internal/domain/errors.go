package domain

import "errors"

var (
	// ErrInvalidDomain is returned when the input cannot be parsed as a domain
	ErrInvalidDomain = errors.New("invalid domain format")
)
