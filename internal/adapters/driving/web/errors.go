package web

import "errors"

// Web server errors.
var (
	// ErrInvalidPorts is returned when ports is nil.
	ErrInvalidPorts = errors.New("web: ports cannot be nil")

	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("web: search service is required")

	// ErrMissingClientFactory is returned when no search client factory is provided.
	ErrMissingClientFactory = errors.New("web: search client factory is required")
)
