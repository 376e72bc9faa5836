package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrURLRequired is returned when no URL is provided
	ErrURLRequired = errors.New("url required")
	// ErrProjectIDRequired is returned when no project ID is provided for an audit
	ErrProjectIDRequired = errors.New("project_id required")
	// ErrKeywordRequired is returned when a keyword check is missing the keyword
	ErrKeywordRequired = errors.New("keyword required")
	// ErrDomainRequired is returned when a keyword check is missing the tracked domain
	ErrDomainRequired = errors.New("domain required")
	// ErrKeywordIDRequired is returned when no keyword ID is provided
	ErrKeywordIDRequired = errors.New("keyword_id required")
	// ErrRankNotConfigured is returned when the rank lookup client is nil
	ErrRankNotConfigured = errors.New("rank lookup not configured")
	// ErrStoreNotConfigured is returned when the persistence layer is nil
	ErrStoreNotConfigured = errors.New("persistence not configured")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
)
