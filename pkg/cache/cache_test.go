package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InsertAndRetrieve(t *testing.T) {
	cache := NewCache(10)

	require.NoError(t, cache.Insert("a", "valueA", 1))

	value, ok := cache.Retrieve("a")
	require.True(t, ok)
	assert.Equal(t, "valueA", value)

	_, ok = cache.Retrieve("missing")
	assert.False(t, ok)
}

func TestCache_DuplicateKeyRejected(t *testing.T) {
	cache := NewCache(10)

	require.NoError(t, cache.Insert("a", "valueA", 1))
	assert.Error(t, cache.Insert("a", "valueA", 1))
}

func TestCache_WeightTracking(t *testing.T) {
	cache := NewCache(10)
	assert.Equal(t, 10, cache.GetBudget())

	require.NoError(t, cache.Insert("a", "valueA", 1))
	require.NoError(t, cache.Insert("b", "valueB", 2))
	require.NoError(t, cache.Insert("c", "valueC", 3))

	assert.Equal(t, 6, cache.GetWeight())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewCache(2)

	require.NoError(t, cache.Insert("evicted", "valueEvicted", 1))
	require.NoError(t, cache.Insert("a", "valueA", 1))
	require.NoError(t, cache.Insert("b", "valueB", 1))

	// The weight budget held, at the cost of the oldest entry
	assert.Equal(t, 2, cache.GetWeight())

	_, ok := cache.Retrieve("evicted")
	assert.False(t, ok)

	_, ok = cache.Retrieve("a")
	assert.True(t, ok)

	_, ok = cache.Retrieve("b")
	assert.True(t, ok)
}

func TestCache_RetrieveRefreshesRecency(t *testing.T) {
	cache := NewCache(2)

	require.NoError(t, cache.Insert("a", "valueA", 1))
	require.NoError(t, cache.Insert("b", "valueB", 1))

	// Touching "a" makes "b" the eviction candidate
	_, ok := cache.Retrieve("a")
	require.True(t, ok)

	require.NoError(t, cache.Insert("c", "valueC", 1))

	_, ok = cache.Retrieve("b")
	assert.False(t, ok)

	_, ok = cache.Retrieve("a")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(10)

	require.NoError(t, cache.Insert("a", "valueA", 1))
	cache.Clear()

	_, ok := cache.Retrieve("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.GetWeight())
}
