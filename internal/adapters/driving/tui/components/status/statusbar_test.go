package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/productsearch/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilArgs(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		name     string
		outcome  domain.Outcome
		expected State
	}{
		{"zero", domain.Outcome{}, StateReady},
		{"rejected", domain.Outcome{State: domain.OutcomeRejected}, StateError},
		{"network", domain.Outcome{State: domain.OutcomeNetworkError}, StateError},
		{"http", domain.Outcome{State: domain.OutcomeHTTPError}, StateError},
		{"malformed", domain.Outcome{State: domain.OutcomeMalformed}, StateError},
		{"empty", domain.Outcome{State: domain.OutcomeEmptyResult}, StateEmpty},
		{"rendered", domain.Outcome{State: domain.OutcomeRendered}, StateResults},
		{"superseded", domain.Outcome{State: domain.OutcomeSuperseded}, StateReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StateFor(tt.outcome))
		})
	}
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *Bar)
		contains []string
	}{
		{
			name:     "ready",
			setup:    func(b *Bar) {},
			contains: []string{"Ready", "enter: search"},
		},
		{
			name: "searching",
			setup: func(b *Bar) {
				b.SetState(StateSearching)
			},
			contains: []string{domain.StatusSearching},
		},
		{
			name: "network error",
			setup: func(b *Bar) {
				b.SetOutcome(domain.Outcome{State: domain.OutcomeNetworkError, Err: errors.New("dial")}, domain.StatusNetwork)
			},
			contains: []string{"Network error"},
		},
		{
			name: "results",
			setup: func(b *Bar) {
				b.SetOutcome(domain.Outcome{State: domain.OutcomeRendered, Count: 3}, "3 result(s)")
			},
			contains: []string{"3 result(s)", "scroll up"},
		},
		{
			name: "results without status text",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetResultCount(2)
			},
			contains: []string{"2 result(s)"},
		},
		{
			name: "empty",
			setup: func(b *Bar) {
				b.SetOutcome(domain.Outcome{State: domain.OutcomeEmptyResult}, domain.StatusNoResults)
			},
			contains: []string{"No results."},
		},
		{
			name: "prompt",
			setup: func(b *Bar) {
				b.SetOutcome(domain.Outcome{State: domain.OutcomeRejected}, domain.StatusPromptQuery)
			},
			contains: []string{"Type a query first."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			tt.setup(bar)

			view := bar.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestBar_SetOutcome(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetOutcome(domain.Outcome{State: domain.OutcomeRendered, Count: 4}, "4 result(s)")

	assert.Equal(t, StateResults, bar.State())
	assert.Equal(t, "4 result(s)", bar.Message())
	assert.Equal(t, 4, bar.ResultCount())
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetOutcome(domain.Outcome{State: domain.OutcomeHTTPError}, "Error: 500")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
}

func TestBar_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(5)

	assert.NotPanics(t, func() { _ = bar.View() })
}

func TestBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(nil)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
	assert.Nil(t, bar.Init())
}
