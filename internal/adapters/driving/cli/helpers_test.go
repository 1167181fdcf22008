package cli

import (
	"bytes"
	"context"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/productsearch/internal/adapters/driven/memory"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/services"
)

// mockSearchAPI implements driven.SearchAPI for CLI tests.
type mockSearchAPI struct {
	mu       sync.Mutex
	resp     *domain.SearchResponse
	err      error
	requests []domain.SearchRequest
}

func (m *mockSearchAPI) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.resp == nil {
		return &domain.SearchResponse{Results: []domain.SearchResultItem{}}, nil
	}
	return m.resp, nil
}

func (m *mockSearchAPI) calls() []domain.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SearchRequest(nil), m.requests...)
}

// testEnv holds the fakes behind the installed dependencies.
type testEnv struct {
	api   *mockSearchAPI
	store *memory.ConfigStore
	deps  *Dependencies
}

// setupTestServices installs dependencies backed by real services over
// an in-memory config store and a fake backend.
func setupTestServices(api *mockSearchAPI) (*testEnv, func()) {
	if api == nil {
		api = &mockSearchAPI{}
	}
	settings := domain.DefaultSettings()
	store := memory.NewConfigStore(nil)

	d := &Dependencies{
		Search:    services.NewSearchService(api, settings),
		Settings:  services.NewSettingsService(store),
		NewClient: services.NewClient,
		Resolved:  settings,
	}
	restore := setDependencies(d)
	return &testEnv{api: api, store: store, deps: d}, restore
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	resetFlags(rootCmd)
	resetContexts(context.Background(), rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// executeWithInput runs the root command reading stdin from input.
func executeWithInput(input string, args ...string) (string, error) {
	resetFlags(rootCmd)
	resetContexts(context.Background(), rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// resetContexts gives every command ctx. Cobra keeps the first context a
// subcommand ran with, so a cancelled one would leak into later tests.
func resetContexts(ctx context.Context, cmd *cobra.Command) {
	cmd.SetContext(ctx)
	for _, child := range cmd.Commands() {
		resetContexts(ctx, child)
	}
}
