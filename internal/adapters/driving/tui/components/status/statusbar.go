// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/productsearch/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateEmpty     State = "empty"
	StateResults   State = "results"
)

// StateFor maps a search outcome to a display state.
func StateFor(o domain.Outcome) State {
	switch {
	case o.State == "":
		return StateReady
	case o.State.IsFailure():
		return StateError
	case o.State == domain.OutcomeEmptyResult:
		return StateEmpty
	case o.State == domain.OutcomeRendered:
		return StateResults
	default:
		return StateReady
	}
}

// Bar displays the form status line and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the status text in the colour of the state.
func (s *Bar) renderLeft() string {
	text := s.message
	switch s.state {
	case StateSearching:
		if text == "" {
			text = domain.StatusSearching
		}
		return s.styles.Muted.Render(text)
	case StateError:
		if text == "" {
			text = "Error"
		}
		return s.styles.Error.Render(text)
	case StateEmpty:
		return s.styles.Warning.Render(text)
	case StateResults:
		if text == "" {
			text = domain.StatusResultCount(s.resultCount)
		}
		return s.styles.Success.Render(text)
	case StateReady:
		if text != "" {
			return s.styles.Normal.Render(text)
		}
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults && s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetOutcome shows a completed search. status is the form's status line.
func (s *Bar) SetOutcome(o domain.Outcome, status string) {
	s.state = StateFor(o)
	s.message = status
	s.resultCount = o.Count
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the status text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the status text.
func (s *Bar) Message() string {
	return s.message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
