package driven

import "errors"

// ErrMissingElement is returned when an Elements set is incomplete.
var ErrMissingElement = errors.New("elements: required element is missing")

// TextField is an owned input element holding a value.
type TextField interface {
	// Value returns the current value.
	Value() string

	// SetValue replaces the current value.
	SetValue(value string)
}

// SubmitField is a text input that can be submitted, e.g. with the Enter key.
type SubmitField interface {
	TextField

	// OnSubmit registers a handler and returns a function that removes it.
	OnSubmit(handler func()) (unbind func())
}

// Button is an owned element that can be activated.
type Button interface {
	// OnClick registers a handler and returns a function that removes it.
	OnClick(handler func()) (unbind func())
}

// TextOutput is an owned element displaying a single line of text.
type TextOutput interface {
	// Text returns the current text.
	Text() string

	// SetText replaces the current text.
	SetText(text string)
}

// Container is an owned element holding rendered content.
type Container interface {
	// Content returns the current content.
	Content() string

	// SetContent replaces the current content.
	SetContent(content string)
}

// Elements aggregates the references a search client owns.
// The client writes Status and Results exclusively.
type Elements struct {
	// Query is the free-text query input.
	Query SubmitField

	// Collection is the collection selector.
	Collection TextField

	// TopK is the result count input.
	TopK TextField

	// SearchBtn submits a search.
	SearchBtn Button

	// ClearBtn resets the form.
	ClearBtn Button

	// Status shows the status line.
	Status TextOutput

	// Results holds the rendered notices and cards.
	Results Container
}

// Validate ensures every element is set.
func (e Elements) Validate() error {
	if e.Query == nil || e.Collection == nil || e.TopK == nil ||
		e.SearchBtn == nil || e.ClearBtn == nil || e.Status == nil || e.Results == nil {
		return ErrMissingElement
	}
	return nil
}
