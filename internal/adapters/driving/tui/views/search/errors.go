package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoPage indicates that no form page was provided.
	ErrNoPage = errors.New("search view: page is required")

	// ErrNoSearchClient indicates that no search client was provided.
	ErrNoSearchClient = errors.New("search view: search client is required")
)
