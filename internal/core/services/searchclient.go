package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// Ensure SearchClient implements the interface.
var (
	_ driving.SearchClient        = (*SearchClient)(nil)
	_ driving.SearchClientFactory = NewClient
)

// Search client errors.
var (
	// ErrClientClosed is returned by operations on a closed client.
	ErrClientClosed = errors.New("search client: closed")

	// ErrAlreadyBound is returned when Bind is called twice.
	ErrAlreadyBound = errors.New("search client: handlers already bound")

	// ErrMissingSearchService is returned when no search service is given.
	ErrMissingSearchService = errors.New("search client: search service is required")

	// ErrMissingRenderer is returned when no renderer is given.
	ErrMissingRenderer = errors.New("search client: renderer is required")
)

// SearchClient drives one search form. It owns the Status and Results
// elements and is the only writer to them.
//
// Every Submit takes a sequence number and cancels the previous in-flight
// request. Only the latest submission writes results; older ones end
// as OutcomeSuperseded. Clear also invalidates the in-flight submission.
type SearchClient struct {
	search   driving.SearchService
	elements driven.Elements
	renderer driven.Renderer
	ctx      context.Context

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	unbinds []func()
	bound   bool
	closed  bool
	last    domain.Outcome
}

// NewSearchClient creates a search client over the given elements.
func NewSearchClient(
	search driving.SearchService,
	elements driven.Elements,
	renderer driven.Renderer,
) (*SearchClient, error) {
	if search == nil {
		return nil, ErrMissingSearchService
	}
	if renderer == nil {
		return nil, ErrMissingRenderer
	}
	if err := elements.Validate(); err != nil {
		return nil, err
	}

	return &SearchClient{
		search:   search,
		elements: elements,
		renderer: renderer,
		ctx:      context.Background(),
	}, nil
}

// NewClient is NewSearchClient as a driving.SearchClientFactory.
// Handlers are not bound; callers Bind the returned client.
func NewClient(
	search driving.SearchService,
	elements driven.Elements,
	renderer driven.Renderer,
) (driving.SearchClient, error) {
	client, err := NewSearchClient(search, elements, renderer)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// SetContext sets the context used by handler-triggered searches.
func (c *SearchClient) SetContext(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx = ctx
}

// Bind registers the search button, the query submit key and the clear button.
func (c *SearchClient) Bind() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	if c.bound {
		return ErrAlreadyBound
	}

	c.unbinds = append(c.unbinds,
		c.elements.SearchBtn.OnClick(c.handleSearch),
		c.elements.Query.OnSubmit(c.handleSearch),
		c.elements.ClearBtn.OnClick(c.Clear),
	)
	c.bound = true
	return nil
}

// Close removes every handler and cancels the in-flight search.
// It is safe to call more than once.
func (c *SearchClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	for _, unbind := range c.unbinds {
		unbind()
	}
	c.unbinds = nil
	c.bound = false
	c.seq++
	c.cancelInFlight()
	c.closed = true
	return nil
}

func (c *SearchClient) handleSearch() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	c.Submit(ctx)
}

// Submit runs one search invocation from the current form values.
func (c *SearchClient) Submit(ctx context.Context) domain.Outcome {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.Outcome{State: domain.OutcomeSuperseded, Err: ErrClientClosed}
	}

	c.seq++
	seq := c.seq
	c.cancelInFlight()

	c.elements.Status.SetText("")
	c.elements.Results.SetContent("")

	req := c.readForm()
	if req.Query == "" {
		out := domain.Outcome{State: domain.OutcomeRejected, Status: domain.StatusPromptQuery, Err: domain.ErrEmptyQuery}
		c.elements.Status.SetText(out.Status)
		c.last = out
		c.mu.Unlock()
		return out
	}

	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.elements.Status.SetText(domain.StatusSearching)
	c.mu.Unlock()

	resp, err := c.search.Search(reqCtx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if seq != c.seq {
		logger.Debug("Dropping superseded search #%d", seq)
		return domain.Outcome{State: domain.OutcomeSuperseded}
	}
	c.cancel = nil

	out := c.apply(resp, err)
	c.last = out
	return out
}

// Clear resets the query, results and status. No request is made.
func (c *SearchClient) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.cancelInFlight()
	c.elements.Query.SetValue("")
	c.elements.Results.SetContent("")
	c.elements.Status.SetText("")
	c.last = domain.Outcome{}
}

// LastOutcome returns the outcome of the most recent completed submission.
func (c *SearchClient) LastOutcome() domain.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// cancelInFlight cancels the pending request (caller must hold lock).
func (c *SearchClient) cancelInFlight() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// readForm reads the owned inputs (caller must hold lock).
// A blank or non-numeric result count falls back to the default.
func (c *SearchClient) readForm() domain.SearchRequest {
	topK, err := strconv.Atoi(strings.TrimSpace(c.elements.TopK.Value()))
	if err != nil {
		topK = 0
	}
	return domain.SearchRequest{
		Query:      strings.TrimSpace(c.elements.Query.Value()),
		Collection: strings.TrimSpace(c.elements.Collection.Value()),
		TopK:       topK,
	}
}

// apply writes the status and results for a completed search (caller must hold lock).
func (c *SearchClient) apply(resp *domain.SearchResponse, err error) domain.Outcome {
	var out domain.Outcome
	var content string

	var httpErr *domain.HTTPError
	switch {
	case err == nil && resp.Len() == 0:
		out = domain.Outcome{State: domain.OutcomeEmptyResult, Status: domain.StatusNoResults, Results: []domain.SearchResultItem{}}
		content = c.renderer.RenderNotice(domain.NoticeInfo, domain.NoticeNoResults)

	case err == nil:
		cards := make([]string, len(resp.Results))
		for i, item := range resp.Results {
			cards[i] = c.renderer.RenderCard(item, i)
		}
		out = domain.Outcome{
			State:   domain.OutcomeRendered,
			Status:  domain.StatusResultCount(len(resp.Results)),
			Count:   len(resp.Results),
			Results: resp.Results,
		}
		content = c.renderer.JoinCards(cards)

	case errors.Is(err, domain.ErrEmptyQuery):
		out = domain.Outcome{State: domain.OutcomeRejected, Status: domain.StatusPromptQuery, Err: err}

	case IsRejection(err):
		out = domain.Outcome{State: domain.OutcomeRejected, Status: "Error: " + err.Error(), Err: err}

	case errors.As(err, &httpErr):
		text := httpErr.Body
		if text == "" {
			text = domain.NoticeRequestFailed
		}
		out = domain.Outcome{State: domain.OutcomeHTTPError, Status: domain.StatusHTTPError(httpErr.StatusCode), Err: err}
		content = c.renderer.RenderNotice(domain.NoticeError, text)

	case errors.Is(err, domain.ErrMalformedResponse):
		out = domain.Outcome{State: domain.OutcomeMalformed, Status: domain.StatusMalformed, Err: err}
		content = c.renderer.RenderNotice(domain.NoticeError, err.Error())

	default:
		out = domain.Outcome{State: domain.OutcomeNetworkError, Status: domain.StatusNetwork, Err: err}
		content = c.renderer.RenderNotice(domain.NoticeError, domain.NoticeNetwork)
	}

	c.elements.Status.SetText(out.Status)
	c.elements.Results.SetContent(content)
	return out
}
