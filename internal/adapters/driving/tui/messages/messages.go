// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/productsearch/internal/core/domain"
)

// Trigger identifies which form control started a search.
type Trigger int

const (
	// TriggerQuery is Enter in the query field.
	TriggerQuery Trigger = iota
	// TriggerSearchButton is the Search button.
	TriggerSearchButton
	// TriggerClearButton is the Clear button.
	TriggerClearButton
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	switch t {
	case TriggerQuery:
		return "query"
	case TriggerSearchButton:
		return "search_button"
	case TriggerClearButton:
		return "clear_button"
	default:
		return "unknown"
	}
}

// SearchCompleted is sent when a bound search handler has returned.
// Outcome is the client's latest outcome at that point.
type SearchCompleted struct {
	Trigger Trigger
	Outcome domain.Outcome
}

// Cleared is sent after the Clear button handler has run.
type Cleared struct{}

// CollectionsReloaded carries a refreshed collection list.
type CollectionsReloaded struct {
	Collections []domain.Collection
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
