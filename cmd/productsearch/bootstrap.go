package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/productsearch/internal/adapters/driven/config/envconfig"
	"github.com/custodia-labs/productsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/productsearch/internal/adapters/driven/searchapi"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/services"
	"github.com/custodia-labs/productsearch/internal/logger"
	"github.com/custodia-labs/productsearch/internal/metrics"
)

// bootstrap builds the command dependencies. Settings resolve in order:
// config file, then .env and PRODUCTSEARCH_* variables, then flags.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Dependencies, error) {
	if err := envconfig.LoadDotEnv(); err != nil {
		return nil, err
	}

	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	logger.Debug("Using config %s", store.Path())

	settingsService := services.NewSettingsService(store)
	resolve := func() (domain.Settings, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return domain.Settings{}, err
		}
		overlay, err := envconfig.FromEnviron()
		if err != nil {
			return domain.Settings{}, err
		}
		settings, err = overlay.Apply(settings)
		if err != nil {
			return domain.Settings{}, err
		}
		if opts.APIURL != "" {
			settings.APIURL = opts.APIURL
		}
		if err := settings.Validate(); err != nil {
			return domain.Settings{}, fmt.Errorf("invalid configuration: %w", err)
		}
		return settings, nil
	}

	settings, err := resolve()
	if err != nil {
		return nil, err
	}
	logger.Debug("Search backend %s (timeout %s)", settings.APIURL, settings.APITimeout)

	api, err := searchapi.NewClient(searchapi.Config{
		BaseURL:       settings.APIURL,
		Timeout:       settings.APITimeout,
		RatePerSecond: settings.RatePerSecond,
	})
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	search := services.NewSearchService(api, settings)
	search.SetMetrics(m)

	return &cli.Dependencies{
		Search:    search,
		Settings:  settingsService,
		NewClient: services.NewClient,
		Resolved:  settings,
		Metrics:   m.Handler(),
		WatchCollections: func(ctx context.Context, onChange func([]domain.Collection)) error {
			return store.Watch(ctx, func() {
				reloaded, err := resolve()
				if err != nil {
					logger.Warn("Ignoring config change: %v", err)
					return
				}
				search.SetCollections(reloaded.Collections, reloaded.DefaultCollection)
				if onChange != nil {
					onChange(reloaded.Collections)
				}
			})
		},
		Close: api.Close,
	}, nil
}
