package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/services"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	mu       sync.Mutex
	resp     *domain.SearchResponse
	err      error
	requests []domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if strings.TrimSpace(req.Query) == "" {
		return nil, domain.ErrEmptyQuery
	}
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
	return domain.DefaultCollections()
}

func (m *mockSearchService) Defaults() domain.SearchRequest {
	return domain.SearchRequest{Collection: "nike_shoes", TopK: 5}
}

func (m *mockSearchService) calls() []domain.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SearchRequest(nil), m.requests...)
}

func newTestServer(t *testing.T, search *mockSearchService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{
		Search:    search,
		NewClient: services.NewClient,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("productsearch_searches_total 0\n"))
		}),
	})
	require.NoError(t, err)
	return server
}

// get issues a request and parses the HTML response.
func get(t *testing.T, server *Server, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func TestNewServer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing search", &Ports{NewClient: services.NewClient}, ErrMissingSearchService},
		{"missing factory", &Ports{Search: &mockSearchService{}}, ErrMissingClientFactory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.ports)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, server)
		})
	}
}

func TestServer_Index(t *testing.T) {
	server := newTestServer(t, &mockSearchService{})

	rec, doc := get(t, server, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, 1, doc.Find(`script[src*="model-viewer"]`).Length())
	for _, id := range []string{"query", "collection", "topk", "searchBtn", "clearBtn", "status", "results"} {
		assert.Equal(t, 1, doc.Find("#"+id).Length(), "missing #%s", id)
	}
	assert.Equal(t, 3, doc.Find("#collection option").Length())
	assert.Equal(t, "nike_shoes", doc.Find("#collection option[selected]").AttrOr("value", ""))
	assert.Equal(t, "5", doc.Find("#topk").AttrOr("value", ""))
	assert.Empty(t, strings.TrimSpace(doc.Find("#status").Text()))
	assert.Equal(t, 0, doc.Find("#results article").Length())
}

func TestServer_Search_RendersCards(t *testing.T) {
	search := &mockSearchService{resp: &domain.SearchResponse{Results: []domain.SearchResultItem{
		{Name: domain.StringPtr("<script>"), Price: domain.FloatPtr(19.999)},
		{Name: domain.StringPtr("Air Max"), ARModelGLB: domain.StringPtr("model.glb")},
	}}}
	server := newTestServer(t, search)

	rec, doc := get(t, server, "/search?q=red+shoes&collection=watches&top_k=2&action=search")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2 result(s)", strings.TrimSpace(doc.Find("#status").Text()))
	assert.Equal(t, "red shoes", doc.Find("#query").AttrOr("value", ""))
	assert.Equal(t, "watches", doc.Find("#collection option[selected]").AttrOr("value", ""))

	cards := doc.Find("#results article")
	require.Equal(t, 2, cards.Length())

	first := cards.Eq(0)
	assert.Equal(t, "<script>", first.Find("h2").Text())
	assert.Equal(t, "$20.00", first.Find(".price").Text())
	assert.Equal(t, domain.NoticeNoARModel, strings.TrimSpace(first.Find(".no-ar").Text()))
	assert.Equal(t, 0, doc.Find("#results script").Length())

	viewer := cards.Eq(1).Find("model-viewer")
	require.Equal(t, 1, viewer.Length())
	assert.Equal(t, "model.glb", viewer.AttrOr("src", ""))
	_, hasAR := viewer.Attr("ar")
	assert.True(t, hasAR)

	calls := search.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.SearchRequest{Query: "red shoes", Collection: "watches", TopK: 2}, calls[0])
}

func TestServer_Search_EmptyQuery(t *testing.T) {
	search := &mockSearchService{}
	server := newTestServer(t, search)

	_, doc := get(t, server, "/search?q=+++&action=search")

	assert.Equal(t, domain.StatusPromptQuery, strings.TrimSpace(doc.Find("#status").Text()))
	assert.Empty(t, search.calls())
}

func TestServer_Search_NetworkError(t *testing.T) {
	search := &mockSearchService{err: &domain.NetworkError{Err: context.DeadlineExceeded}}
	server := newTestServer(t, search)

	_, doc := get(t, server, "/search?q=shoes")

	assert.Equal(t, domain.StatusNetwork, strings.TrimSpace(doc.Find("#status").Text()))
	assert.Equal(t, domain.NoticeNetwork, strings.TrimSpace(doc.Find("#results .notice-error").Text()))
}

func TestServer_Search_Clear(t *testing.T) {
	search := &mockSearchService{}
	server := newTestServer(t, search)

	rec, doc := get(t, server, "/search?q=shoes&collection=clothing&action=clear")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, doc.Find("#query").AttrOr("value", "x"))
	assert.Empty(t, strings.TrimSpace(doc.Find("#status").Text()))
	assert.Equal(t, 0, doc.Find("#results").Children().Length())
	assert.Equal(t, "clothing", doc.Find("#collection option[selected]").AttrOr("value", ""))
	assert.Empty(t, search.calls())
}

func TestServer_Search_UnknownAction(t *testing.T) {
	server := newTestServer(t, &mockSearchService{})

	rec, _ := get(t, server, "/search?q=shoes&action=delete")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Search_UnknownCollection(t *testing.T) {
	search := &mockSearchService{}
	server := newTestServer(t, search)

	rec, _ := get(t, server, "/search?q=shoes&collection=cars")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown collection cars")
	assert.Empty(t, search.calls())
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, &mockSearchService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	server := newTestServer(t, &mockSearchService{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "productsearch_searches_total")
}

func TestServer_MetricsDisabled(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}, NewClient: services.NewClient})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Headers(t *testing.T) {
	server := newTestServer(t, &mockSearchService{})

	rec, _ := get(t, server, "/")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://unpkg.com")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	server := newTestServer(t, &mockSearchService{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
