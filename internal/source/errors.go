package source

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is returned when a collection cannot be fetched: a transport
// error, a non-success status, or a body that is not the expected JSON.
var ErrFetchFailed = errors.New("data fetch failed")

// FetchError describes a failed fetch. It matches ErrFetchFailed with errors.Is.
type FetchError struct {
	// Endpoint is the URL that was requested.
	Endpoint string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	Err error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("fetching %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetching %s: status %d", e.Endpoint, e.StatusCode)
	default:
		return fmt.Sprintf("fetching %s: %v", e.Endpoint, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports ErrFetchFailed as a match.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
