// Package tui provides an interactive terminal user interface for productsearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
)

// ClientFactory creates a search client over the TUI's form elements.
type ClientFactory = driving.SearchClientFactory

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities and the form defaults.
	Search driving.SearchService

	// NewClient builds the client that drives the form.
	NewClient ClientFactory

	// Reloads optionally delivers refreshed collection lists.
	Reloads <-chan []domain.Collection
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, newClient ClientFactory) *Ports {
	return &Ports{
		Search:    search,
		NewClient: newClient,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
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
