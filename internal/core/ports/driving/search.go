package driving

import (
	"context"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
)

// SearchService provides product search to external actors.
type SearchService interface {
	// Search normalizes and validates the request, then runs it against the backend.
	// An empty collection falls back to the configured default.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	// Collections returns the selectable collections in display order.
	Collections() []domain.Collection

	// Defaults returns a request preset with the default collection and top_k.
	Defaults() domain.SearchRequest
}

// SearchClient drives one search form: it reads the owned input elements,
// runs the search, and writes the status line and rendered results.
type SearchClient interface {
	// Submit runs one search invocation from the current form values.
	Submit(ctx context.Context) domain.Outcome

	// Clear resets the query, results and status, and drops any in-flight search.
	Clear()

	// SetContext sets the context used by handler-triggered searches.
	SetContext(ctx context.Context)

	// Bind registers the button and key handlers on the owned elements.
	Bind() error

	// Close removes every handler and cancels the in-flight search.
	Close() error

	// LastOutcome returns the outcome of the most recent completed submission.
	LastOutcome() domain.Outcome
}

// SearchClientFactory creates a search client over a set of owned elements.
// Driving adapters receive one so they never depend on the services package.
type SearchClientFactory func(
	search SearchService,
	elements driven.Elements,
	renderer driven.Renderer,
) (SearchClient, error)
