package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive product search form in the terminal.

Controls:
  Tab / Shift+Tab  Move between fields and buttons
  ←/→              Change collection
  Enter            Search (Clear on the Clear button)
  Ctrl+L           Clear
  ↑/↓, PgUp/PgDn   Scroll results
  F1               Toggle help
  Esc, Ctrl+C      Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	d, err := searchDeps()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ports := tui.NewPorts(d.Search, d.NewClient)
	ports.Reloads = watchReloads(ctx, d)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchReloads forwards collection reloads to a channel until ctx ends.
// A reload is dropped when the previous one has not been consumed yet.
func watchReloads(ctx context.Context, d *Dependencies) <-chan []domain.Collection {
	if d.WatchCollections == nil {
		return nil
	}

	reloads := make(chan []domain.Collection, 1)
	go func() {
		err := d.WatchCollections(ctx, func(collections []domain.Collection) {
			select {
			case reloads <- collections:
			default:
				logger.Debug("Dropping collection reload, previous one pending")
			}
		})
		if err != nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()
	return reloads
}
