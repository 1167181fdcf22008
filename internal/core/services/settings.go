package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIURL            = "api.url"
	keyAPITimeout        = "api.timeout"
	keyAPIRate           = "api.rate_per_second"
	keyCollections       = "search.collections"
	keyDefaultCollection = "search.default_collection"
	keyDefaultTopK       = "search.default_top_k"
	keyWebAddr           = "web.addr"
)

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing keys take their defaults;
// present but invalid keys are reported.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if v := s.configStore.GetString(keyAPIURL); v != "" {
		settings.APIURL = v
	}

	if v := s.configStore.GetString(keyAPITimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, keyAPITimeout, err)
		}
		settings.APITimeout = d
	}

	if _, ok := s.configStore.Get(keyAPIRate); ok {
		settings.RatePerSecond = s.configStore.GetFloat(keyAPIRate)
	}

	if raw := s.configStore.GetStringSlice(keyCollections); len(raw) > 0 {
		collections := make([]domain.Collection, 0, len(raw))
		for _, entry := range raw {
			c, err := domain.ParseCollection(entry)
			if err != nil {
				return domain.Settings{}, fmt.Errorf("%s: %w", keyCollections, err)
			}
			collections = append(collections, c)
		}
		settings.Collections = collections
		settings.DefaultCollection = collections[0].Name
	}

	if v := s.configStore.GetString(keyDefaultCollection); v != "" {
		settings.DefaultCollection = v
	}

	if v := s.configStore.GetInt(keyDefaultTopK); v > 0 {
		settings.DefaultTopK = v
	}

	if v := s.configStore.GetString(keyWebAddr); v != "" {
		settings.WebAddr = v
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	collections := make([]string, len(settings.Collections))
	for i, c := range settings.Collections {
		collections[i] = c.String()
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAPIURL, settings.APIURL},
		{keyAPITimeout, settings.APITimeout.String()},
		{keyAPIRate, settings.RatePerSecond},
		{keyCollections, collections},
		{keyDefaultCollection, settings.DefaultCollection},
		{keyDefaultTopK, settings.DefaultTopK},
		{keyWebAddr, settings.WebAddr},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}
