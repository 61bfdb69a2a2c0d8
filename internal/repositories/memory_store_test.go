package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafferjason/invoice-scanner/internal/repositories"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "settings", "userPin")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "settings", "userPin", "4321"))

	value, found, err := store.Get(ctx, "settings", "userPin")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "4321", value)

	// Overwrite replaces in place.
	require.NoError(t, store.Set(ctx, "settings", "userPin", "9999"))
	value, _, err = store.Get(ctx, "settings", "userPin")
	require.NoError(t, err)
	assert.Equal(t, "9999", value)

	require.NoError(t, store.Delete(ctx, "settings", "userPin"))
	_, found, err = store.Get(ctx, "settings", "userPin")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreNamespaceIsolation(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "devices", "token-1", "a"))
	require.NoError(t, store.Set(ctx, "webauthn", "token-1", "b"))

	value, found, err := store.Get(ctx, "devices", "token-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a", value)

	require.NoError(t, store.Delete(ctx, "devices", "token-1"))
	_, found, err = store.Get(ctx, "webauthn", "token-1")
	require.NoError(t, err)
	assert.True(t, found, "deletes stay inside their namespace")
}

func TestMemoryStoreListSorted(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()

	for _, key := range []string{"c", "a", "b"} {
		require.NoError(t, store.Set(ctx, "rate-limits", key, key))
	}

	entries, err := store.List(ctx, "rate-limits")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, "b", entries[1].Key)
	assert.Equal(t, "c", entries[2].Key)

	empty, err := store.List(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := repositories.NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			_ = store.Set(ctx, "devices", key, "v")
			_, _, _ = store.Get(ctx, "devices", key)
			_, _ = store.List(ctx, "devices")
		}(i)
	}
	wg.Wait()

	entries, err := store.List(ctx, "devices")
	require.NoError(t, err)
	assert.Len(t, entries, 16)
}
