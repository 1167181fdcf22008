// Package cards renders search results as styled terminal cards.
package cards

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// MinWidth is the narrowest card width.
const MinWidth = 30

// Renderer renders results as bordered terminal cards.
type Renderer struct {
	styles *styles.Styles

	mu    sync.RWMutex
	width int
}

// NewRenderer creates a card renderer for the given total width.
func NewRenderer(s *styles.Styles, width int) *Renderer {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if width < MinWidth {
		width = MinWidth
	}
	return &Renderer{styles: s, width: width}
}

// Width returns the card width.
func (r *Renderer) Width() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width
}

// SetWidth changes the width used by subsequent renders.
func (r *Renderer) SetWidth(width int) {
	if width < MinWidth {
		width = MinWidth
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
}

// RenderCard renders one result. index is zero-based.
func (r *Renderer) RenderCard(item domain.SearchResultItem, index int) string {
	inner := r.Width() - 4 // border and padding

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		r.styles.Muted.Render(fmt.Sprintf("#%d ", index+1)),
		r.styles.Subtitle.Render(truncate(item.DisplayName(), inner-4)),
	)

	meta := lipgloss.JoinHorizontal(lipgloss.Top,
		r.styles.Badge.Render(item.DisplayCategory()),
		" ",
		r.styles.Price.Render(item.DisplayPrice()),
	)

	lines := []string{header, meta}
	if desc := item.DisplayDescription(); desc != "" {
		lines = append(lines, r.styles.Normal.Width(inner).Render(desc))
	}

	if item.HasARModel() {
		lines = append(lines, r.styles.Success.Render("3D / AR: ")+r.styles.Muted.Render(item.ModelURL()))
		if usdz := item.QuickLookURL(); usdz != "" {
			lines = append(lines, r.styles.Success.Render("Quick Look: ")+r.styles.Muted.Render(usdz))
		}
	} else {
		lines = append(lines, r.styles.Warning.Render(domain.NoticeNoARModel))
	}

	return r.styles.Card.Width(inner).Render(strings.Join(lines, "\n"))
}

// RenderNotice renders a message block in place of cards.
func (r *Renderer) RenderNotice(kind domain.NoticeKind, text string) string {
	var style lipgloss.Style
	switch kind {
	case domain.NoticeError:
		style = r.styles.Error
	case domain.NoticeWarning:
		style = r.styles.Warning
	default:
		style = r.styles.Normal
	}
	return r.styles.Border.Padding(0, 1).Width(r.Width() - 4).Render(style.Render(text))
}

// JoinCards stacks cards vertically.
func (r *Renderer) JoinCards(cards []string) string {
	return strings.Join(cards, "\n")
}

// truncate shortens s to max display cells with an ellipsis.
func truncate(s string, max int) string {
	if max < 4 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
