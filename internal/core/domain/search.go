package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Search request bounds.
const (
	// DefaultTopK is used when no result count is given.
	DefaultTopK = 5

	// MaxTopK is the largest result count the backend accepts.
	MaxTopK = 20
)

// Display placeholders for absent result fields.
const (
	// PlaceholderName is shown when a result has no name.
	PlaceholderName = "N/A"

	// PlaceholderCategory is shown when a result has no category.
	PlaceholderCategory = "N/A"

	// PlaceholderPrice is shown when a result has no usable price.
	PlaceholderPrice = "—"
)

// SearchRequest is the input for one search invocation.
type SearchRequest struct {
	// Query is the free-text product query.
	Query string

	// Collection is the catalogue partition to search.
	Collection string

	// TopK is the maximum number of results requested.
	TopK int
}

// Normalize trims the query and applies the default result count.
func (r SearchRequest) Normalize() SearchRequest {
	r.Query = strings.TrimSpace(r.Query)
	r.Collection = strings.TrimSpace(r.Collection)
	if r.TopK <= 0 {
		r.TopK = DefaultTopK
	}
	return r
}

// Validate checks a normalized request.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.Collection == "" {
		return fmt.Errorf("%w: collection is required", ErrInvalidInput)
	}
	if r.TopK < 1 || r.TopK > MaxTopK {
		return fmt.Errorf("%w: top_k must be between 1 and %d, got %d", ErrInvalidInput, MaxTopK, r.TopK)
	}
	return nil
}

// SearchResultItem is one product returned by the backend.
// Every field is optional; nil means absent on the wire.
type SearchResultItem struct {
	// Name is the product name. Displayed as "N/A" when absent.
	Name *string `json:"name,omitempty"`

	// Description is free text. Displayed as empty when absent.
	Description *string `json:"description,omitempty"`

	// Category is displayed uppercased, or "N/A" when absent.
	Category *string `json:"category,omitempty"`

	// Price is displayed as $X.XX, or "—" when absent or not finite.
	Price *float64 `json:"price,omitempty"`

	// ARModelGLB is the glTF binary model URL. Its presence enables the 3D/AR viewer.
	ARModelGLB *string `json:"ar_model_glb,omitempty"`

	// ARModelUSDZ is the iOS Quick Look model URL.
	ARModelUSDZ *string `json:"ar_model_usdz,omitempty"`
}

// UnmarshalJSON decodes a wire item, rejecting fields of the wrong type.
func (i *SearchResultItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: result item: %v", ErrMalformedResponse, err)
	}

	var item SearchResultItem
	var err error
	if item.Name, err = decodeText(raw, "name"); err != nil {
		return err
	}
	if item.Description, err = decodeText(raw, "description"); err != nil {
		return err
	}
	if item.Category, err = decodeText(raw, "category"); err != nil {
		return err
	}
	if item.ARModelGLB, err = decodeText(raw, "ar_model_glb"); err != nil {
		return err
	}
	if item.ARModelUSDZ, err = decodeText(raw, "ar_model_usdz"); err != nil {
		return err
	}
	if item.Price, err = decodeNumber(raw, "price"); err != nil {
		return err
	}

	*i = item
	return nil
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}

// decodeText reads an optional string field. Blank strings count as absent.
func decodeText(raw map[string]json.RawMessage, key string) (*string, error) {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, fmt.Errorf("%w: field %q must be a string, got %s", ErrMalformedResponse, key, v)
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return &s, nil
}

// decodeNumber reads an optional numeric field.
func decodeNumber(raw map[string]json.RawMessage, key string) (*float64, error) {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return nil, fmt.Errorf("%w: field %q must be a number, got %s", ErrMalformedResponse, key, v)
	}
	return &f, nil
}

// DisplayName returns the name or its placeholder.
func (i SearchResultItem) DisplayName() string {
	if i.Name == nil {
		return PlaceholderName
	}
	return *i.Name
}

// DisplayDescription returns the description or an empty string.
func (i SearchResultItem) DisplayDescription() string {
	if i.Description == nil {
		return ""
	}
	return *i.Description
}

// DisplayCategory returns the uppercased category or its placeholder.
func (i SearchResultItem) DisplayCategory() string {
	if i.Category == nil || strings.TrimSpace(*i.Category) == "" {
		return PlaceholderCategory
	}
	return strings.ToUpper(*i.Category)
}

// DisplayPrice returns the formatted price.
func (i SearchResultItem) DisplayPrice() string {
	return FormatPrice(i.Price)
}

// HasARModel reports whether a 3D/AR model URL is present.
func (i SearchResultItem) HasARModel() bool {
	return i.ARModelGLB != nil && *i.ARModelGLB != ""
}

// ModelURL returns the glTF model URL, or empty.
func (i SearchResultItem) ModelURL() string {
	if i.ARModelGLB == nil {
		return ""
	}
	return *i.ARModelGLB
}

// QuickLookURL returns the USDZ model URL, or empty.
func (i SearchResultItem) QuickLookURL() string {
	if i.ARModelUSDZ == nil {
		return ""
	}
	return *i.ARModelUSDZ
}

// FormatPrice renders a price as $X.XX, or the placeholder when
// the value is absent or not finite. Cent ties round away from zero.
func FormatPrice(p *float64) string {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return PlaceholderPrice
	}
	return fmt.Sprintf("$%.2f", math.Round(*p*100)/100)
}

// SearchResponse is the backend answer for a successful search.
type SearchResponse struct {
	// Results are in display order.
	Results []SearchResultItem `json:"results"`
}

// UnmarshalJSON decodes the wire body. A missing or null results key
// decodes as an empty list.
func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if isNull(raw.Results) {
		r.Results = []SearchResultItem{}
		return nil
	}

	var items []SearchResultItem
	if err := json.Unmarshal(raw.Results, &items); err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			return err
		}
		return fmt.Errorf("%w: results: %v", ErrMalformedResponse, err)
	}
	if items == nil {
		items = []SearchResultItem{}
	}
	r.Results = items
	return nil
}

// Len returns the number of results.
func (r *SearchResponse) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Results)
}

// StringPtr returns a pointer to s. Useful for building result items.
func StringPtr(s string) *string {
	return &s
}

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 {
	return &f
}
