package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestMemoryStore(t *testing.T, maxEntries int) (*MemoryStore, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	store, err := newMemoryStore(maxEntries, clock.Now)
	require.NoError(t, err)

	return store, clock
}

func TestMemoryStoreGetSet(t *testing.T) {
	store, _ := newTestMemoryStore(t, 2)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "value", time.Hour))

	value, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store, clock := newTestMemoryStore(t, 2)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "value", time.Minute))
	clock.Advance(2 * time.Minute)

	_, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store, _ := newTestMemoryStore(t, 2)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "summary-a", time.Hour))
	require.NoError(t, store.Set(ctx, "b", "summary-b", time.Hour))

	_, ok, _ := store.Get(ctx, "a")
	require.True(t, ok)

	require.NoError(t, store.Set(ctx, "c", "summary-c", time.Hour))

	_, ok, _ = store.Get(ctx, "a")
	assert.True(t, ok, "a was used recently and must survive")

	_, ok, _ = store.Get(ctx, "b")
	assert.False(t, ok, "b is least recently used and must be evicted")

	_, ok, _ = store.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryStoreOverwriteRefreshesExpiry(t *testing.T) {
	store, clock := newTestMemoryStore(t, 2)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "old", time.Minute))
	clock.Advance(30 * time.Second)
	require.NoError(t, store.Set(ctx, "key", "new", time.Minute))
	clock.Advance(45 * time.Second)

	value, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", value)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreRejectsInvalidInput(t *testing.T) {
	_, err := NewMemoryStore(0)
	require.Error(t, err)

	store, _ := newTestMemoryStore(t, 1)
	assert.Error(t, store.Set(context.Background(), "", "v", time.Hour))
	assert.Error(t, store.Set(context.Background(), "k", "v", 0))

	_, ok, err := store.Get(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}
