// Package envconfig overlays PRODUCTSEARCH_* environment variables on
// file-based settings. A .env file in the working directory is loaded
// first when present.
package envconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

// Prefix is the prefix shared by every recognised variable.
const Prefix = "PRODUCTSEARCH_"

// Overlay holds environment overrides. Zero values leave the
// underlying setting unchanged.
type Overlay struct {
	APIURL            string        `env:"PRODUCTSEARCH_API_URL"`
	APITimeout        time.Duration `env:"PRODUCTSEARCH_API_TIMEOUT"`
	RatePerSecond     float64       `env:"PRODUCTSEARCH_API_RATE_PER_SECOND"`
	Collections       string        `env:"PRODUCTSEARCH_COLLECTIONS"`
	DefaultCollection string        `env:"PRODUCTSEARCH_DEFAULT_COLLECTION"`
	DefaultTopK       int           `env:"PRODUCTSEARCH_DEFAULT_TOP_K"`
	WebAddr           string        `env:"PRODUCTSEARCH_WEB_ADDR"`
}

// LoadDotEnv loads variables from the given files (default: .env) into the
// process environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnviron reads the overlay from the process environment.
func FromEnviron() (Overlay, error) {
	var o Overlay
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return Overlay{}, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return o, nil
}

// FromEnvSet reads the overlay from an explicit variable set.
func FromEnvSet(es env.EnvSet) (Overlay, error) {
	var o Overlay
	if err := env.Unmarshal(es, &o); err != nil {
		return Overlay{}, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return o, nil
}

// IsZero reports whether no variable was set.
func (o Overlay) IsZero() bool {
	return o == Overlay{}
}

// Apply returns settings with the overlay's non-zero values applied.
// PRODUCTSEARCH_COLLECTIONS is a comma-separated list of name or name=Label.
func (o Overlay) Apply(s domain.Settings) (domain.Settings, error) {
	if o.APIURL != "" {
		s.APIURL = o.APIURL
	}
	if o.APITimeout > 0 {
		s.APITimeout = o.APITimeout
	}
	if o.RatePerSecond > 0 {
		s.RatePerSecond = o.RatePerSecond
	}

	if strings.TrimSpace(o.Collections) != "" {
		var collections []domain.Collection
		for _, entry := range strings.Split(o.Collections, ",") {
			if strings.TrimSpace(entry) == "" {
				continue
			}
			c, err := domain.ParseCollection(entry)
			if err != nil {
				return domain.Settings{}, fmt.Errorf("%sCOLLECTIONS: %w", Prefix, err)
			}
			collections = append(collections, c)
		}
		if len(collections) == 0 {
			return domain.Settings{}, fmt.Errorf("%w: %sCOLLECTIONS: at least one collection is required", domain.ErrInvalidInput, Prefix)
		}
		s.Collections = collections
		if _, ok := domain.FindCollection(collections, s.DefaultCollection); !ok {
			s.DefaultCollection = collections[0].Name
		}
	}

	if o.DefaultCollection != "" {
		s.DefaultCollection = o.DefaultCollection
	}
	if o.DefaultTopK > 0 {
		s.DefaultTopK = o.DefaultTopK
	}
	if o.WebAddr != "" {
		s.WebAddr = o.WebAddr
	}
	return s, nil
}
