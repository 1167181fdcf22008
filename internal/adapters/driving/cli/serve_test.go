package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{":8090", "localhost:8090"},
		{"127.0.0.1:8090", "127.0.0.1:8090"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.expected, displayAddr(tt.addr))
		})
	}
}

func TestServeCmd_Flags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)
}

func TestServeCmd_NotConfigured(t *testing.T) {
	restore := setDependencies(nil)
	defer restore()

	_, err := execute("serve")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestServeCmd_StopsWithContext(t *testing.T) {
	env, cleanup := setupTestServices(nil)
	defer cleanup()

	var watched sync.WaitGroup
	watched.Add(1)
	env.deps.WatchCollections = func(ctx context.Context, _ func([]domain.Collection)) error {
		defer watched.Done()
		<-ctx.Done()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	resetFlags(rootCmd)
	resetContexts(ctx, rootCmd)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)

	require.NoError(t, err)
	watched.Wait()
}

func TestStartWatcher_NoWatcher(t *testing.T) {
	assert.NotPanics(t, func() {
		startWatcher(context.Background(), &Dependencies{})
	})
}
