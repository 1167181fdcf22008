package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService validates requests and runs them against the backend.
type SearchService struct {
	api     driven.SearchAPI
	metrics driven.SearchMetrics

	mu                sync.RWMutex
	collections       []domain.Collection
	defaultCollection string
	defaultTopK       int
}

// NewSearchService creates a new search service from resolved settings.
func NewSearchService(api driven.SearchAPI, settings domain.Settings) *SearchService {
	s := &SearchService{api: api}
	s.SetCollections(settings.Collections, settings.DefaultCollection)
	s.defaultTopK = settings.DefaultTopK
	if s.defaultTopK <= 0 {
		s.defaultTopK = domain.DefaultTopK
	}
	return s
}

// SetMetrics sets the optional metrics recorder.
func (s *SearchService) SetMetrics(metrics driven.SearchMetrics) {
	s.metrics = metrics
}

// SetCollections replaces the selectable collections, e.g. after a config reload.
// An empty default selects the first collection.
func (s *SearchService) SetCollections(collections []domain.Collection, defaultCollection string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = append([]domain.Collection(nil), collections...)
	if defaultCollection == "" && len(collections) > 0 {
		defaultCollection = collections[0].Name
	}
	s.defaultCollection = defaultCollection
}

// Collections returns the selectable collections in display order.
func (s *SearchService) Collections() []domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Collection(nil), s.collections...)
}

// Defaults returns a request preset with the default collection and top_k.
func (s *SearchService) Defaults() domain.SearchRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SearchRequest{Collection: s.defaultCollection, TopK: s.defaultTopK}
}

// Search normalizes and validates the request, then runs it against the backend.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")

	req, err := s.prepare(req)
	if err != nil {
		logger.Debug("Rejected request: %v", err)
		s.observe(domain.OutcomeRejected, 0)
		return nil, err
	}
	logger.Debug("Query: %q, collection: %s, top_k: %d", req.Query, req.Collection, req.TopK)

	start := time.Now()
	resp, err := s.api.Search(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		state := domain.StateForError(err)
		logger.Warn("Search failed after %s (%s): %v", elapsed, state, err)
		s.observe(state, elapsed)
		return nil, fmt.Errorf("search %s: %w", req.Collection, err)
	}

	state := domain.OutcomeRendered
	if resp.Len() == 0 {
		state = domain.OutcomeEmptyResult
	}
	logger.Info("Search returned %d result(s) in %s", resp.Len(), elapsed)
	s.observe(state, elapsed)

	return resp, nil
}

// prepare applies defaults and validates the request.
func (s *SearchService) prepare(req domain.SearchRequest) (domain.SearchRequest, error) {
	defaults := s.Defaults()
	if req.TopK <= 0 {
		req.TopK = defaults.TopK
	}
	req = req.Normalize()
	if req.Collection == "" {
		req.Collection = defaults.Collection
	}

	if err := req.Validate(); err != nil {
		return req, err
	}

	s.mu.RLock()
	_, known := domain.FindCollection(s.collections, req.Collection)
	s.mu.RUnlock()
	if !known {
		return req, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, req.Collection)
	}
	return req, nil
}

func (s *SearchService) observe(state domain.OutcomeState, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveSearch(state, elapsed)
	}
}

// IsRejection reports whether err is a local validation failure
// raised before any request was sent.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrUnknownCollection)
}
