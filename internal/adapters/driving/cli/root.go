// Package cli implements the productsearch command line.
//
// Commands read their collaborators from package-level ports. The program
// entry point installs a Bootstrap that builds them from the root flags;
// tests install fakes with setDependencies.
package cli

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driving"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// noDeps marks commands that run without dependencies.
const noDeps = "productsearch/no-deps"

// errNotConfigured is returned by commands run without their services.
var errNotConfigured = errors.New("search service not configured")

// Options carries the root flags to the bootstrap function.
type Options struct {
	// Verbose enables debug logging.
	Verbose bool

	// ConfigDir overrides the config directory (default ~/.productsearch).
	ConfigDir string

	// APIURL overrides the search backend URL.
	APIURL string
}

// Dependencies are the collaborators the commands drive.
type Dependencies struct {
	// Search runs searches and lists collections.
	Search driving.SearchService

	// Settings reads and writes the config file.
	Settings driving.SettingsService

	// NewClient builds search clients over in-memory pages.
	NewClient driving.SearchClientFactory

	// Resolved are the effective settings after env and flag overrides.
	Resolved domain.Settings

	// Metrics optionally serves Prometheus metrics.
	Metrics http.Handler

	// WatchCollections optionally reports collection list changes until ctx ends.
	WatchCollections func(ctx context.Context, onChange func([]domain.Collection)) error

	// Close releases resources held by the dependencies.
	Close func() error
}

// Bootstrap builds the dependencies from the root flags.
type Bootstrap func(ctx context.Context, opts Options) (*Dependencies, error)

var (
	version = "dev"

	verbose    bool
	configDir  string
	apiURLFlag string

	bootstrap Bootstrap
	deps      *Dependencies
)

var rootCmd = &cobra.Command{
	Use:   "productsearch",
	Short: "Search the product catalogue",
	Long: `productsearch queries a product search backend and renders the results
as product cards, in the terminal, as HTML, or as JSON.

It also serves the search page with 3D/AR previews, runs an interactive
terminal UI, and exposes the search as an MCP tool.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.productsearch)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "search backend URL (overrides config and environment)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds the dependencies.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command. Command output goes to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// setDependencies replaces the dependencies and returns a restore function.
func setDependencies(d *Dependencies) func() {
	previous := deps
	deps = d
	return func() { deps = previous }
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if deps != nil || bootstrap == nil || cmd.Annotations[noDeps] != "" {
		return nil
	}

	d, err := bootstrap(cmd.Context(), Options{
		Verbose:   verbose,
		ConfigDir: configDir,
		APIURL:    apiURLFlag,
	})
	if err != nil {
		return err
	}
	deps = d
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if deps == nil || deps.Close == nil {
		return nil
	}
	return deps.Close()
}

// searchDeps returns the dependencies needed to run searches.
func searchDeps() (*Dependencies, error) {
	if deps == nil || deps.Search == nil || deps.NewClient == nil {
		return nil, errNotConfigured
	}
	return deps, nil
}
