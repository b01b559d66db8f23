package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a metadata document does not exist in a repository.
var ErrNotFound = errors.New("not found")

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == 404
}

// MalformedMetadataError is returned when a metadata document cannot be parsed
// or lacks the versioning/lastUpdated fields.
type MalformedMetadataError struct {
	Reason string
	Err    error
}

func (e *MalformedMetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed metadata: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed metadata: %s", e.Reason)
}

func (e *MalformedMetadataError) Unwrap() error {
	return e.Err
}

// InvalidCoordinateError is returned when an artifact coordinate cannot be parsed.
type InvalidCoordinateError struct {
	Input  string
	Reason string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate %q: %s", e.Input, e.Reason)
}

// UnknownRepositoryError is returned when a repository id is not registered.
type UnknownRepositoryError struct {
	ID string
}

func (e *UnknownRepositoryError) Error() string {
	return fmt.Sprintf("unknown repository: %s", e.ID)
}
