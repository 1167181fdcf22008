package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"api.url": "http://search.local"}
	store := NewConfigStore(seed)

	assert.Equal(t, "http://search.local", store.GetString("api.url"))

	// Seed map is copied
	seed["api.url"] = "changed"
	assert.Equal(t, "http://search.local", store.GetString("api.url"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("key1", "value1"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"string_key": "hello",
		"int_key":    int64(7),
		"float_key":  2.5,
		"slice_key":  []any{"a", 1, "b"},
	})

	assert.Equal(t, "hello", store.GetString("string_key"))
	assert.Equal(t, "", store.GetString("int_key"))
	assert.Equal(t, 7, store.GetInt("int_key"))
	assert.Equal(t, 2, store.GetInt("float_key"))
	assert.Equal(t, 2.5, store.GetFloat("float_key"))
	assert.Equal(t, 7.0, store.GetFloat("int_key"))
	assert.Equal(t, 0.0, store.GetFloat("string_key"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("slice_key"))
	assert.Nil(t, store.GetStringSlice("string_key"))
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore(nil)

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
			_ = store.GetInt("counter")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}
