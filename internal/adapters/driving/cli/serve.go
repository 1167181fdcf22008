package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/productsearch/internal/adapters/driving/web"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page",
	Long: `Serves the product search page with 3D/AR previews.

Routes:
  GET /          search form
  GET /search    run a search (q, collection, top_k, action=search|clear)
  GET /metrics   Prometheus metrics
  GET /healthz   health check

The collection list is reloaded when the config file changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8090)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	d, err := searchDeps()
	if err != nil {
		return err
	}

	server, err := web.NewServer(&web.Ports{
		Search:    d.Search,
		NewClient: d.NewClient,
		Metrics:   d.Metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startWatcher(ctx, d)

	addr := serveAddr
	if addr == "" {
		addr = d.Resolved.WebAddr
	}
	cmd.Printf("Serving product search on http://%s\n", displayAddr(addr))
	return server.Run(ctx, addr)
}

// startWatcher reloads collections in the background until ctx ends.
func startWatcher(ctx context.Context, d *Dependencies) {
	if d.WatchCollections == nil {
		return
	}
	go func() {
		err := d.WatchCollections(ctx, func(collections []domain.Collection) {
			logger.Info("Reloaded %d collection(s)", len(collections))
		})
		if err != nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()
}

// displayAddr turns ":8090" into "localhost:8090".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
