package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

// SearchAPI issues searches against the product search backend.
// Implementations send exactly one request per call and never retry.
type SearchAPI interface {
	// Search runs a normalized, validated request.
	// Transport failures are returned as *domain.NetworkError,
	// non-2xx answers as *domain.HTTPError, and undecodable bodies
	// wrap domain.ErrMalformedResponse.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// SearchMetrics records search outcomes.
type SearchMetrics interface {
	// ObserveSearch records one completed search.
	ObserveSearch(state domain.OutcomeState, elapsed time.Duration)
}
