// Package list provides the scrollable results pane for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/styles"
)

// ResultPane displays the rendered results container and scrolls it by line.
type ResultPane struct {
	lines  []string
	offset int
	styles *styles.Styles
	width  int
	height int
}

// NewResultPane creates a new results pane.
func NewResultPane(s *styles.Styles) *ResultPane {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultPane{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the pane.
func (r *ResultPane) Init() tea.Cmd {
	return nil
}

// Update handles scroll keys.
func (r *ResultPane) Update(msg tea.Msg) (*ResultPane, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.ScrollUp(1)
		case tea.KeyDown:
			r.ScrollDown(1)
		case tea.KeyPgUp:
			r.ScrollUp(r.height)
		case tea.KeyPgDown:
			r.ScrollDown(r.height)
		default:
			// Handle other keys
		}
	}
	return r, nil
}

// View renders the visible window of the content.
func (r *ResultPane) View() string {
	if len(r.lines) == 0 {
		return r.styles.Muted.Render("No results yet. Type a query and press Enter.")
	}

	end := r.offset + r.height
	if end > len(r.lines) {
		end = len(r.lines)
	}
	return strings.Join(r.lines[r.offset:end], "\n")
}

// SetContent replaces the content and scrolls to the top.
func (r *ResultPane) SetContent(content string) {
	r.offset = 0
	if content == "" {
		r.lines = nil
		return
	}
	r.lines = strings.Split(content, "\n")
}

// Content returns the full content.
func (r *ResultPane) Content() string {
	return strings.Join(r.lines, "\n")
}

// ScrollUp moves the window up by n lines.
func (r *ResultPane) ScrollUp(n int) {
	r.offset -= n
	if r.offset < 0 {
		r.offset = 0
	}
}

// ScrollDown moves the window down by n lines, stopping at the last page.
func (r *ResultPane) ScrollDown(n int) {
	r.offset += n
	if maxOffset := r.maxOffset(); r.offset > maxOffset {
		r.offset = maxOffset
	}
}

func (r *ResultPane) maxOffset() int {
	m := len(r.lines) - r.height
	if m < 0 {
		return 0
	}
	return m
}

// Offset returns the first visible line.
func (r *ResultPane) Offset() int {
	return r.offset
}

// SetDimensions sets the component dimensions.
func (r *ResultPane) SetDimensions(width, height int) {
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
	if maxOffset := r.maxOffset(); r.offset > maxOffset {
		r.offset = maxOffset
	}
}

// Width returns the current width.
func (r *ResultPane) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultPane) Height() int {
	return r.height
}

// LineCount returns the number of content lines.
func (r *ResultPane) LineCount() int {
	return len(r.lines)
}

// IsEmpty returns whether the pane has no content.
func (r *ResultPane) IsEmpty() bool {
	return len(r.lines) == 0
}
