package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

func TestSettingsCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(settingsCmd.Commands()))
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set", "wizard"}, names)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	restore := setDependencies(&Dependencies{})
	defer restore()

	_, err := execute("settings", "show")

	assert.ErrorIs(t, err, errNoSettings)
}

func TestSettingsShow_Defaults(t *testing.T) {
	_, cleanup := setupTestServices(nil)
	defer cleanup()

	out, err := execute("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "URL: http://localhost:8080")
	assert.Contains(t, out, "Timeout: 30s")
	assert.Contains(t, out, "Rate limit: off")
	assert.Contains(t, out, "Collections: nike_shoes=Nike shoes,clothing=Clothing,watches=Watches")
	assert.Contains(t, out, "Default collection: nike_shoes")
	assert.Contains(t, out, "Default results: 5")
	assert.Contains(t, out, "Address: :8090")
	assert.Contains(t, out, "Configuration is valid.")
	assert.NotContains(t, out, "overridden")
}

func TestSettingsShow_ReportsOverride(t *testing.T) {
	env, cleanup := setupTestServices(nil)
	defer cleanup()
	env.deps.Resolved.APIURL = "http://staging:8080"

	out, err := execute("settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Effective API URL (overridden): http://staging:8080")
}

func TestSettingsSet_Saves(t *testing.T) {
	env, cleanup := setupTestServices(nil)
	defer cleanup()

	out, err := execute("settings", "set", "search.default_top_k", "8")

	require.NoError(t, err)
	assert.Contains(t, out, "Set search.default_top_k to 8")

	saved, err := env.deps.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 8, saved.DefaultTopK)
}

func TestSettingsSet_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown key", args: []string{"colour", "blue"}},
		{name: "bad timeout", args: []string{"api.timeout", "soon"}},
		{name: "top_k out of range", args: []string{"search.default_top_k", "30"}},
		{name: "unknown default collection", args: []string{"search.default_collection", "cars"}},
		{name: "relative url", args: []string{"api.url", "localhost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, cleanup := setupTestServices(nil)
			defer cleanup()

			_, err := execute(append([]string{"settings", "set"}, tt.args...)...)
			require.Error(t, err)

			saved, err := env.deps.Settings.Get()
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultSettings(), saved)
		})
	}
}

func TestSettingsWizard(t *testing.T) {
	env, cleanup := setupTestServices(nil)
	defer cleanup()

	input := "http://search.local:9000\nbags=Bags,hats\n2\n7\n"
	out, err := executeWithInput(input, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Step 1: Search Backend")
	assert.Contains(t, out, "1. Bags")
	assert.Contains(t, out, "2. hats")
	assert.Contains(t, out, "Configuration Complete!")

	saved, err := env.deps.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://search.local:9000", saved.APIURL)
	assert.Equal(t, []domain.Collection{{Name: "bags", Label: "Bags"}, {Name: "hats", Label: "hats"}}, saved.Collections)
	assert.Equal(t, "hats", saved.DefaultCollection)
	assert.Equal(t, 7, saved.DefaultTopK)
}

func TestSettingsWizard_KeepsDefaultsOnEmptyInput(t *testing.T) {
	env, cleanup := setupTestServices(nil)
	defer cleanup()

	_, err := executeWithInput("\n\n\n\n", "settings", "wizard")

	require.NoError(t, err)
	saved, err := env.deps.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), saved)
}

func TestApplySetting(t *testing.T) {
	base := domain.DefaultSettings()

	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, s domain.Settings)
	}{
		{
			name:  "api url",
			key:   "api.url",
			value: " http://search:8080 ",
			check: func(t *testing.T, s domain.Settings) {
				assert.Equal(t, "http://search:8080", s.APIURL)
			},
		},
		{
			name:  "timeout",
			key:   "api.timeout",
			value: "5s",
			check: func(t *testing.T, s domain.Settings) {
				assert.Equal(t, 5*time.Second, s.APITimeout)
			},
		},
		{
			name:  "rate",
			key:   "api.rate_per_second",
			value: "2.5",
			check: func(t *testing.T, s domain.Settings) {
				assert.InDelta(t, 2.5, s.RatePerSecond, 0.0001)
			},
		},
		{
			name:  "collections reset a missing default",
			key:   "search.collections",
			value: "bags=Bags,hats",
			check: func(t *testing.T, s domain.Settings) {
				require.Len(t, s.Collections, 2)
				assert.Equal(t, "bags", s.DefaultCollection)
			},
		},
		{
			name:  "collections keep a present default",
			key:   "search.collections",
			value: "watches,nike_shoes",
			check: func(t *testing.T, s domain.Settings) {
				assert.Equal(t, "nike_shoes", s.DefaultCollection)
			},
		},
		{
			name:  "web addr",
			key:   "web.addr",
			value: "127.0.0.1:9999",
			check: func(t *testing.T, s domain.Settings) {
				assert.Equal(t, "127.0.0.1:9999", s.WebAddr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := applySetting(base, tt.key, tt.value)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestApplySetting_Errors(t *testing.T) {
	base := domain.DefaultSettings()

	for _, kv := range [][2]string{
		{"api.timeout", "later"},
		{"api.rate_per_second", "fast"},
		{"search.default_top_k", "many"},
		{"search.collections", " , "},
		{"unknown", "x"},
	} {
		_, err := applySetting(base, kv[0], kv[1])
		assert.ErrorIs(t, err, domain.ErrInvalidInput, kv[0])
	}
}

func TestParseCollections(t *testing.T) {
	collections, err := parseCollections("shoes=Running shoes, ,hats")

	require.NoError(t, err)
	assert.Equal(t, []domain.Collection{
		{Name: "shoes", Label: "Running shoes"},
		{Name: "hats", Label: "hats"},
	}, collections)

	_, err = parseCollections("=Nameless")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"", 5, 2, 2},
		{"3", 5, 2, 3},
		{"0", 5, 2, 2},
		{"6", 5, 2, 2},
		{"abc", 5, 2, 2},
		{"5", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}
