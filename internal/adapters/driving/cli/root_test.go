package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/services"
)

func TestRootCmd_Flags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	v := flags.Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)
	assert.NotNil(t, flags.Lookup("config"))
	assert.NotNil(t, flags.Lookup("api-url"))
}

func TestRootCmd_BootstrapReceivesFlags(t *testing.T) {
	restore := setDependencies(nil)
	defer restore()

	var got Options
	closed := false
	SetBootstrap(func(_ context.Context, opts Options) (*Dependencies, error) {
		got = opts
		settings := domain.DefaultSettings()
		return &Dependencies{
			Search:    services.NewSearchService(&mockSearchAPI{}, settings),
			NewClient: services.NewClient,
			Resolved:  settings,
			Close: func() error {
				closed = true
				return nil
			},
		}, nil
	})
	defer SetBootstrap(nil)

	_, err := execute("--config", "/tmp/ps", "--api-url", "http://search:9000", "collections")

	require.NoError(t, err)
	assert.Equal(t, Options{ConfigDir: "/tmp/ps", APIURL: "http://search:9000"}, got)
	assert.True(t, closed)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	restore := setDependencies(nil)
	defer restore()

	bootErr := errors.New("config unreadable")
	SetBootstrap(func(context.Context, Options) (*Dependencies, error) {
		return nil, bootErr
	})
	defer SetBootstrap(nil)

	_, err := execute("collections")

	assert.ErrorIs(t, err, bootErr)
}

func TestRootCmd_ExistingDependenciesSkipBootstrap(t *testing.T) {
	_, cleanup := setupTestServices(nil)
	defer cleanup()

	SetBootstrap(func(context.Context, Options) (*Dependencies, error) {
		return nil, errors.New("should not run")
	})
	defer SetBootstrap(nil)

	_, err := execute("collections")

	assert.NoError(t, err)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"search", "collections", "serve", "tui", "mcp", "settings", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
