package memory

import (
	"slices"
	"strconv"
	"sync"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
)

// Ensure the page elements implement their interfaces.
var (
	_ driven.SubmitField = (*Field)(nil)
	_ driven.TextField   = (*Select)(nil)
	_ driven.Button      = (*Button)(nil)
	_ driven.TextOutput  = (*Text)(nil)
	_ driven.Container   = (*Container)(nil)
)

// handlers is a registration list where each entry can be removed independently.
type handlers struct {
	mu     sync.Mutex
	nextID int
	funcs  map[int]func()
}

func (h *handlers) add(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.funcs == nil {
		h.funcs = make(map[int]func())
	}
	id := h.nextID
	h.nextID++
	h.funcs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.funcs, id)
		})
	}
}

// fire runs every handler in registration order without holding the lock.
func (h *handlers) fire() {
	h.mu.Lock()
	ids := make([]int, 0, len(h.funcs))
	for id := range h.funcs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	funcs := make([]func(), 0, len(ids))
	for _, id := range ids {
		funcs = append(funcs, h.funcs[id])
	}
	h.mu.Unlock()

	for _, fn := range funcs {
		fn()
	}
}

func (h *handlers) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.funcs)
}

// Field is a text input that can be submitted.
type Field struct {
	mu       sync.RWMutex
	value    string
	onSubmit handlers
}

// NewField creates a field holding value.
func NewField(value string) *Field {
	return &Field{value: value}
}

// Value returns the current value.
func (f *Field) Value() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// SetValue replaces the current value.
func (f *Field) SetValue(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
}

// OnSubmit registers a submit handler.
func (f *Field) OnSubmit(handler func()) func() {
	return f.onSubmit.add(handler)
}

// Submit runs the submit handlers, as pressing Enter would.
func (f *Field) Submit() {
	f.onSubmit.fire()
}

// Handlers returns the number of registered submit handlers.
func (f *Field) Handlers() int {
	return f.onSubmit.count()
}

// Select is a single-choice input over a fixed option list.
type Select struct {
	mu      sync.RWMutex
	options []domain.Collection
	value   string
}

// NewSelect creates a select over options with value preselected.
// An unknown value selects the first option.
func NewSelect(options []domain.Collection, value string) *Select {
	s := &Select{options: append([]domain.Collection(nil), options...)}
	s.SetValue(value)
	return s
}

// Value returns the selected option name.
func (s *Select) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// SetValue selects the named option. Unknown names select the first option.
func (s *Select) SetValue(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := domain.FindCollection(s.options, value); ok {
		s.value = value
		return
	}
	if len(s.options) > 0 {
		s.value = s.options[0].Name
		return
	}
	s.value = ""
}

// Options returns the option list.
func (s *Select) Options() []domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Collection(nil), s.options...)
}

// SetOptions replaces the option list, keeping the selection when it still exists.
func (s *Select) SetOptions(options []domain.Collection) {
	s.mu.Lock()
	s.options = append([]domain.Collection(nil), options...)
	current := s.value
	s.mu.Unlock()
	s.SetValue(current)
}

// Index returns the position of the selected option, or -1.
func (s *Select) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, o := range s.options {
		if o.Name == s.value {
			return i
		}
	}
	return -1
}

// Step moves the selection by delta, wrapping around.
func (s *Select) Step(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.options)
	if n == 0 {
		return
	}
	idx := 0
	for i, o := range s.options {
		if o.Name == s.value {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	s.value = s.options[idx].Name
}

// Button is an element that can be clicked.
type Button struct {
	onClick handlers
}

// NewButton creates a button.
func NewButton() *Button {
	return &Button{}
}

// OnClick registers a click handler.
func (b *Button) OnClick(handler func()) func() {
	return b.onClick.add(handler)
}

// Click runs the click handlers synchronously.
func (b *Button) Click() {
	b.onClick.fire()
}

// Handlers returns the number of registered click handlers.
func (b *Button) Handlers() int {
	return b.onClick.count()
}

// Text is a single-line text output.
type Text struct {
	mu   sync.RWMutex
	text string
}

// Text returns the current text.
func (t *Text) Text() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.text
}

// SetText replaces the current text.
func (t *Text) SetText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text = text
}

// Container holds rendered content.
type Container struct {
	mu      sync.RWMutex
	content string
}

// Content returns the current content.
func (c *Container) Content() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content
}

// SetContent replaces the current content.
func (c *Container) SetContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
}

// Page is a complete in-memory search form.
type Page struct {
	Query      *Field
	Collection *Select
	TopK       *Field
	SearchBtn  *Button
	ClearBtn   *Button
	Status     *Text
	Results    *Container
}

// NewPage creates a form preset with the given defaults.
func NewPage(collections []domain.Collection, defaults domain.SearchRequest) *Page {
	topK := ""
	if defaults.TopK > 0 {
		topK = strconv.Itoa(defaults.TopK)
	}
	return &Page{
		Query:      NewField(defaults.Query),
		Collection: NewSelect(collections, defaults.Collection),
		TopK:       NewField(topK),
		SearchBtn:  NewButton(),
		ClearBtn:   NewButton(),
		Status:     &Text{},
		Results:    &Container{},
	}
}

// Elements returns the page as injectable element references.
func (p *Page) Elements() driven.Elements {
	return driven.Elements{
		Query:      p.Query,
		Collection: p.Collection,
		TopK:       p.TopK,
		SearchBtn:  p.SearchBtn,
		ClearBtn:   p.ClearBtn,
		Status:     p.Status,
		Results:    p.Results,
	}
}
