package domain

import (
	"errors"
	"fmt"
)

// OutcomeState is the terminal state of one search invocation.
type OutcomeState string

// Terminal states reached from Requesting, plus the local rejection.
const (
	// OutcomeRejected means the query was empty and no request was made.
	OutcomeRejected OutcomeState = "rejected"

	// OutcomeNetworkError means the backend could not be reached.
	OutcomeNetworkError OutcomeState = "network_error"

	// OutcomeHTTPError means the backend answered with a non-2xx status.
	OutcomeHTTPError OutcomeState = "http_error"

	// OutcomeMalformed means the backend body could not be decoded.
	OutcomeMalformed OutcomeState = "malformed"

	// OutcomeEmptyResult means the search succeeded with zero results.
	OutcomeEmptyResult OutcomeState = "empty_result"

	// OutcomeRendered means one or more cards were rendered.
	OutcomeRendered OutcomeState = "rendered"

	// OutcomeSuperseded means a newer search or a clear replaced this one
	// before it completed. Nothing was written.
	OutcomeSuperseded OutcomeState = "superseded"
)

// IsFailure reports whether the state is an error outcome.
func (s OutcomeState) IsFailure() bool {
	switch s {
	case OutcomeRejected, OutcomeNetworkError, OutcomeHTTPError, OutcomeMalformed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s OutcomeState) String() string {
	return string(s)
}

// User-facing status and notice text.
const (
	StatusPromptQuery = "Type a query first."
	StatusSearching   = "Searching…"
	StatusNetwork     = "Network error"
	StatusNoResults   = "No results."
	StatusMalformed   = "Error: malformed response"

	NoticeNetwork       = "Could not reach the API. Is the server running on this device?"
	NoticeRequestFailed = "Request failed"
	NoticeNoResults     = "No products found."
	NoticeNoARModel     = "AR model not available."
)

// StatusHTTPError returns the status line for a non-2xx answer.
func StatusHTTPError(code int) string {
	return fmt.Sprintf("Error: %d", code)
}

// StatusResultCount returns the status line for n rendered results.
func StatusResultCount(n int) string {
	return fmt.Sprintf("%d result(s)", n)
}

// Outcome describes how one search invocation ended.
type Outcome struct {
	// State is the terminal state.
	State OutcomeState

	// Status is the status text written for this outcome.
	Status string

	// Count is the number of rendered results.
	Count int

	// Results holds the rendered items, in display order.
	Results []SearchResultItem

	// Err is the failure cause for error states.
	Err error
}

// StateForError maps a search error to its terminal state.
// A nil error maps to OutcomeRendered; callers refine it for empty results.
func StateForError(err error) OutcomeState {
	switch {
	case err == nil:
		return OutcomeRendered
	case errors.Is(err, ErrEmptyQuery), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownCollection):
		return OutcomeRejected
	case errors.Is(err, ErrNetworkFailure):
		return OutcomeNetworkError
	case errors.Is(err, ErrHTTPFailure):
		return OutcomeHTTPError
	case errors.Is(err, ErrMalformedResponse):
		return OutcomeMalformed
	default:
		return OutcomeNetworkError
	}
}

// NoticeKind selects the visual treatment of a notice.
type NoticeKind string

// Notice kinds.
const (
	// NoticeError is used for network and HTTP failures.
	NoticeError NoticeKind = "error"

	// NoticeInfo is used for neutral messages such as an empty result set.
	NoticeInfo NoticeKind = "info"

	// NoticeWarning is used for the missing AR model notice.
	NoticeWarning NoticeKind = "warning"
)
