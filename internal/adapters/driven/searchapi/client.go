// Package searchapi provides the HTTP adapter for the product search backend.
package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultAPIURL
	DefaultTimeout = domain.DefaultAPITimeout
	SearchPath     = "/api/search"

	// RequestIDHeader carries a per-request UUID for backend log correlation.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes      = 8 << 20
	maxErrorBodyBytes = 64 << 10
)

// Config holds configuration for the search API client.
type Config struct {
	// BaseURL is the backend origin (default: http://localhost:8080).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond float64

	// Burst is the limiter bucket size (default: 1).
	Burst int

	// HTTPClient overrides the transport. Timeout still applies when set.
	HTTPClient *http.Client
}

// Client issues GET /api/search requests.
type Client struct {
	client  *http.Client
	baseURL *url.URL
	limiter *RateLimiter
}

// NewClient creates a new search API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: api url: %v", domain.ErrInvalidInput, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: api url %q must be http or https", domain.ErrInvalidInput, cfg.BaseURL)
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	httpClient.Timeout = cfg.Timeout

	c := &Client{
		client:  httpClient,
		baseURL: base,
	}
	if cfg.RatePerSecond > 0 {
		c.limiter = NewRateLimiter(RateLimitConfig{
			RequestsPerSecond: cfg.RatePerSecond,
			BurstSize:         cfg.Burst,
		})
	}
	return c, nil
}

// SearchURL returns the request URL for req.
func (c *Client) SearchURL(req domain.SearchRequest) string {
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("collection", req.Collection)
	q.Set("top_k", strconv.Itoa(req.TopK))

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + SearchPath
	u.RawQuery = q.Encode()
	return u.String()
}

// Search sends exactly one GET request. It never retries.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.NetworkError{Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	requestID := uuid.New().String()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(req), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	logger.Debug("GET %s (%s=%s)", httpReq.URL.Redacted(), RequestIDHeader, requestID)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	var out domain.SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if errors.Is(err, domain.ErrMalformedResponse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return &out, nil
}

// statusError builds the error for a non-2xx answer.
func (c *Client) statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		logger.Warn("search api: status %d, failed to read body: %v", resp.StatusCode, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests && c.limiter != nil {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.limiter.RecordRateLimitError(retryAfter)
	}

	return &domain.HTTPError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// Close releases resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
