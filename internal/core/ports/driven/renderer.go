package driven

import "github.com/custodia-labs/productsearch/internal/core/domain"

// Renderer turns result items and notices into container content.
// Implementations must be pure: the output depends only on the arguments.
type Renderer interface {
	// RenderCard renders one result. index is zero-based; cards display it 1-indexed.
	RenderCard(item domain.SearchResultItem, index int) string

	// RenderNotice renders a standalone message in place of cards.
	RenderNotice(kind domain.NoticeKind, text string) string

	// JoinCards combines rendered cards into container content.
	JoinCards(cards []string) string
}
