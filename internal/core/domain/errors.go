package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent search failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyQuery indicates the trimmed query was empty.
	// No request is issued; the user is prompted to type a query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedResponse indicates the backend returned a body that
	// does not decode into a SearchResponse.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNetworkFailure indicates the backend could not be reached.
	ErrNetworkFailure = errors.New("network failure")

	// ErrHTTPFailure indicates the backend answered with a non-2xx status.
	ErrHTTPFailure = errors.New("http failure")

	// ErrUnknownCollection indicates a collection name that is not configured.
	ErrUnknownCollection = errors.New("unknown collection")
)

// NetworkError is a transport-level failure talking to the search backend.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetworkFailure, e.Err}
}

// HTTPError is a non-2xx answer from the search backend.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http failure: status %d", e.StatusCode)
	}
	return fmt.Sprintf("http failure: status %d: %s", e.StatusCode, e.Body)
}

// Is reports whether target is ErrHTTPFailure.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPFailure
}
