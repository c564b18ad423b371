package search

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig     = errors.New("invalid provider configuration")
	ErrTimeout           = errors.New("search request timed out")
	ErrMalformedResponse = errors.New("malformed search response")
)

// BackendError is returned for any non-2xx HTTP status from a backend.
// A 403 from SearXNG usually means the instance has JSON output disabled.
type BackendError struct {
	StatusCode int
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// AsBackendError unwraps err into a BackendError if there is one.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
