package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default settings values.
const (
	DefaultAPIURL     = "http://localhost:8080"
	DefaultAPITimeout = 30 * time.Second
	DefaultWebAddr    = ":8090"
)

// Settings holds the resolved client configuration.
type Settings struct {
	// APIURL is the base URL of the search backend.
	APIURL string

	// APITimeout bounds one search request.
	APITimeout time.Duration

	// RatePerSecond throttles outgoing searches. Zero disables throttling.
	RatePerSecond float64

	// Collections are the selectable collections, in display order.
	Collections []Collection

	// DefaultCollection is preselected in every surface.
	DefaultCollection string

	// DefaultTopK is the preset result count.
	DefaultTopK int

	// WebAddr is the listen address of the web page server.
	WebAddr string
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	collections := DefaultCollections()
	return Settings{
		APIURL:            DefaultAPIURL,
		APITimeout:        DefaultAPITimeout,
		Collections:       collections,
		DefaultCollection: collections[0].Name,
		DefaultTopK:       DefaultTopK,
		WebAddr:           DefaultWebAddr,
	}
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	u, err := url.Parse(s.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api url %q must be absolute", ErrInvalidInput, s.APIURL)
	}
	if s.APITimeout < 0 {
		return fmt.Errorf("%w: api timeout must not be negative", ErrInvalidInput)
	}
	if s.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate per second must not be negative", ErrInvalidInput)
	}
	if len(s.Collections) == 0 {
		return fmt.Errorf("%w: at least one collection is required", ErrInvalidInput)
	}
	if _, ok := FindCollection(s.Collections, s.DefaultCollection); !ok {
		return fmt.Errorf("%w: default collection %q", ErrUnknownCollection, s.DefaultCollection)
	}
	if s.DefaultTopK < 1 || s.DefaultTopK > MaxTopK {
		return fmt.Errorf("%w: default top_k must be between 1 and %d", ErrInvalidInput, MaxTopK)
	}
	return nil
}
