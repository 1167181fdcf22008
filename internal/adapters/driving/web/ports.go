// Package web serves the product search page over HTTP.
//
// Every request fills a fresh in-memory page from the query string, binds a
// search client to it, and clicks the requested button. The page template
// then shows the resulting status line and cards.
package web

import (
	"net/http"

	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the web server needs.
type Ports struct {
	// Search provides search capabilities and the form defaults.
	Search driving.SearchService

	// NewClient builds the client that drives each request's page.
	NewClient driving.SearchClientFactory

	// Metrics optionally serves /metrics.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.NewClient == nil {
		return ErrMissingClientFactory
	}
	return nil
}
