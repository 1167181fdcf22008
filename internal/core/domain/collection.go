package domain

import (
	"fmt"
	"strings"
)

// Collection is a named partition of the searchable product catalogue.
type Collection struct {
	// Name is the backend collection identifier.
	Name string

	// Label is the human-readable name shown in selectors.
	Label string
}

// DefaultCollections returns the catalogue shipped with the backend.
func DefaultCollections() []Collection {
	return []Collection{
		{Name: "nike_shoes", Label: "Nike shoes"},
		{Name: "clothing", Label: "Clothing"},
		{Name: "watches", Label: "Watches"},
	}
}

// ParseCollection parses "name" or "name=Label".
func ParseCollection(s string) (Collection, error) {
	name, label, found := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	label = strings.TrimSpace(label)
	if name == "" {
		return Collection{}, fmt.Errorf("%w: empty collection name in %q", ErrInvalidInput, s)
	}
	if !found || label == "" {
		label = name
	}
	return Collection{Name: name, Label: label}, nil
}

// String returns the "name=Label" form.
func (c Collection) String() string {
	if c.Label == "" || c.Label == c.Name {
		return c.Name
	}
	return c.Name + "=" + c.Label
}

// FindCollection returns the collection with the given name.
func FindCollection(collections []Collection, name string) (Collection, bool) {
	for _, c := range collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}
