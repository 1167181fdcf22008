package mcp

import (
	"context"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	resp        *domain.SearchResponse
	err         error
	collections []domain.Collection
	requests    []domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.resp == nil {
		return &domain.SearchResponse{Results: []domain.SearchResultItem{}}, nil
	}
	return m.resp, nil
}

func (m *mockSearchService) Collections() []domain.Collection {
	if m.collections == nil {
		return domain.DefaultCollections()
	}
	return m.collections
}

func (m *mockSearchService) Defaults() domain.SearchRequest {
	return domain.SearchRequest{Collection: m.Collections()[0].Name, TopK: domain.DefaultTopK}
}
