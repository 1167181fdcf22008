// Package search provides the search form view for the TUI.
package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/productsearch/internal/adapters/driven/memory"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/components/cards"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
)

// Focus identifies the focused form control.
type Focus int

const (
	FocusQuery Focus = iota
	FocusCollection
	FocusTopK
	FocusSearch
	FocusClear

	focusCount
)

// String returns the string representation of the focus target.
func (f Focus) String() string {
	switch f {
	case FocusQuery:
		return "query"
	case FocusCollection:
		return "collection"
	case FocusTopK:
		return "topk"
	case FocusSearch:
		return "search"
	case FocusClear:
		return "clear"
	default:
		return "unknown"
	}
}

// formRows is the height of everything above the results pane.
const formRows = 14

// View is the search form: query, collection, result count, the two
// buttons, the rendered results and a status bar.
//
// The form's state lives in a memory.Page. The bubbles inputs mirror the
// page fields, and key presses are turned into clicks and submits on the
// page so the bound search client handles them.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	query     *input.Field
	topK      *input.Field
	results   *list.ResultPane
	statusbar *status.Bar

	page     *memory.Page
	client   driving.SearchClient
	renderer *cards.Renderer

	focus    Focus
	pending  int
	showHelp bool
	width    int
	height   int
	ready    bool
}

// NewView creates a search form view over page. client must already be
// bound to the page elements.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	page *memory.Page,
	client driving.SearchClient,
	renderer *cards.Renderer,
) (*View, error) {
	if page == nil {
		return nil, ErrNoPage
	}
	if client == nil {
		return nil, ErrNoSearchClient
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if renderer == nil {
		renderer = cards.NewRenderer(s, 80)
	}

	v := &View{
		styles:    s,
		keymap:    km,
		query:     input.NewQueryInput(s),
		topK:      input.NewTopKInput(s),
		results:   list.NewResultPane(s),
		statusbar: status.NewBar(s, km),
		page:      page,
		client:    client,
		renderer:  renderer,
		width:     80,
		height:    24,
	}
	v.query.SetValue(page.Query.Value())
	v.topK.SetValue(page.TopK.Value())
	v.query.Focus()
	return v, nil
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.query.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.Cleared:
		v.handleCleared()
		return v, nil

	case messages.CollectionsReloaded:
		v.page.Collection.SetOptions(msg.Collections)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Help):
		v.showHelp = !v.showHelp
		return v, nil

	case key.Matches(msg, v.keymap.Clear):
		return v, v.press(messages.TriggerClearButton)

	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus((v.focus + 1) % focusCount)

	case key.Matches(msg, v.keymap.PrevField):
		return v, v.setFocus((v.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, v.keymap.Search):
		switch v.focus {
		case FocusQuery:
			return v, v.press(messages.TriggerQuery)
		case FocusClear:
			return v, v.press(messages.TriggerClearButton)
		default:
			return v, v.press(messages.TriggerSearchButton)
		}

	case key.Matches(msg, v.keymap.Up, v.keymap.Down, v.keymap.PageUp, v.keymap.PageDown):
		v.results, _ = v.results.Update(msg)
		return v, nil
	}

	switch v.focus {
	case FocusCollection:
		switch {
		case key.Matches(msg, v.keymap.PrevOption):
			v.page.Collection.Step(-1)
		case key.Matches(msg, v.keymap.NextOption):
			v.page.Collection.Step(1)
		}
		return v, nil

	case FocusQuery:
		var cmd tea.Cmd
		v.query, cmd = v.query.Update(msg)
		v.page.Query.SetValue(v.query.Value())
		return v, cmd

	case FocusTopK:
		var cmd tea.Cmd
		v.topK, cmd = v.topK.Update(msg)
		v.page.TopK.SetValue(v.topK.Value())
		return v, cmd
	}

	return v, nil
}

// setFocus moves focus and updates the inputs' cursors.
func (v *View) setFocus(f Focus) tea.Cmd {
	v.focus = f
	v.query.Blur()
	v.topK.Blur()
	switch f {
	case FocusQuery:
		return v.query.Focus()
	case FocusTopK:
		return v.topK.Focus()
	default:
		return nil
	}
}

// press fires a form control on the page. Handlers run inside the
// returned command, so a slow search never blocks the event loop.
func (v *View) press(t messages.Trigger) tea.Cmd {
	v.page.Query.SetValue(v.query.Value())
	v.page.TopK.SetValue(v.topK.Value())

	page, client := v.page, v.client

	if t == messages.TriggerClearButton {
		return func() tea.Msg {
			page.ClearBtn.Click()
			return messages.Cleared{}
		}
	}

	v.pending++
	if strings.TrimSpace(v.query.Value()) != "" {
		v.statusbar.SetState(status.StateSearching)
		v.statusbar.SetMessage(domain.StatusSearching)
	}

	return func() tea.Msg {
		if t == messages.TriggerQuery {
			page.Query.Submit()
		} else {
			page.SearchBtn.Click()
		}
		return messages.SearchCompleted{Trigger: t, Outcome: client.LastOutcome()}
	}
}

// handleSearchCompleted copies the page's status and results to the screen.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if v.pending > 0 {
		v.pending--
	}
	v.statusbar.SetOutcome(msg.Outcome, v.page.Status.Text())
	if v.pending > 0 {
		v.statusbar.SetState(status.StateSearching)
	}
	v.results.SetContent(v.page.Results.Content())
}

// handleCleared resets the screen from the cleared page.
func (v *View) handleCleared() {
	v.pending = 0
	v.query.SetValue(v.page.Query.Value())
	v.statusbar.Clear()
	v.statusbar.SetMessage(v.page.Status.Text())
	v.results.SetContent(v.page.Results.Content())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	sections = append(sections,
		v.styles.Title.Render("Product Search"),
		"",
		v.query.View(),
		v.renderCollection(),
		v.topK.View(),
		v.renderButtons(),
	)

	if v.showHelp {
		sections = append(sections, v.renderHelp())
	}

	sections = append(sections, "", v.results.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCollection renders the collection selector row.
func (v *View) renderCollection() string {
	label := v.styles.Label.Render("Collection:")

	selected := v.page.Collection.Value()
	opts := v.page.Collection.Options()
	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Name == selected {
			text := o.Label
			if v.focus == FocusCollection {
				text = "‹ " + text + " ›"
			}
			parts = append(parts, v.styles.Selected.Render(text))
			continue
		}
		parts = append(parts, v.styles.Muted.Render(o.Label))
	}

	return label + strings.Join(parts, "  ")
}

// renderButtons renders the Search and Clear buttons.
func (v *View) renderButtons() string {
	button := func(text string, focused bool) string {
		if focused {
			return v.styles.ButtonFocused.Render(text)
		}
		return v.styles.Button.Render(text)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		v.styles.Label.Render(""),
		button("Search", v.focus == FocusSearch),
		" ",
		button("Clear", v.focus == FocusClear),
	)
}

// renderHelp renders every binding on one line per group.
func (v *View) renderHelp() string {
	groups := v.keymap.FullHelp()
	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		hints := make([]string, 0, len(group))
		for _, b := range group {
			h := b.Help()
			hints = append(hints, fmt.Sprintf("%s %s", h.Key, h.Desc))
		}
		lines = append(lines, strings.Join(hints, "  "))
	}
	return v.styles.Help.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.query.SetWidth(width)
	v.topK.SetWidth(width)
	v.renderer.SetWidth(width - 2)
	v.results.SetDimensions(width, height-formRows)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Focus returns the focused control.
func (v *View) Focus() Focus {
	return v.focus
}

// Query returns the query field value.
func (v *View) Query() string {
	return v.query.Value()
}

// SetQuery sets the query field and the page query.
func (v *View) SetQuery(query string) {
	v.query.SetValue(query)
	v.page.Query.SetValue(query)
}

// Collection returns the selected collection name.
func (v *View) Collection() string {
	return v.page.Collection.Value()
}

// Status returns the status text shown in the status bar.
func (v *View) Status() string {
	return v.statusbar.Message()
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// Results returns the rendered results content.
func (v *View) Results() string {
	return v.results.Content()
}

// Pending returns the number of searches still running.
func (v *View) Pending() int {
	return v.pending
}
