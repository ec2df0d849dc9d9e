package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrInvalidPageSize is returned by New when the page size is outside [MinPageSize, MaxPageSize].
	ErrInvalidPageSize = errors.New("pageSize must be between 1 and 33")

	// ErrMissingArtworkID is returned when an artwork lookup gets a zero id.
	ErrMissingArtworkID = errors.New("no artworkId provided")

	// ErrMissingAlbumID is returned when an album lookup gets a zero id.
	ErrMissingAlbumID = errors.New("no albumId provided")
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassNetwork represents transport failures (connection, timeout, cancellation).
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents a success response whose body is not valid JSON.
	ErrorClassDecode ErrorClass = "decode"
)

// RequestError is a failed request. A response with a non-success status is
// not a RequestError; it is reported as "no data".
type RequestError struct {
	Endpoint Endpoint
	URL      string
	Class    ErrorClass
	Err      error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("WADM %s %s error (%s): %v", e.Endpoint, e.Class, e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// statusClass labels a response status for metrics.
func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "success"
	case code >= 400 && code < 500:
		return "client_error"
	case code >= 500:
		return "server_error"
	default:
		return "other"
	}
}
