package currency

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	t.Run("round trips a table", func(t *testing.T) {
		cache := newTestCache(t)

		table := inrTable()
		require.NoError(t, cache.Put("INR", table))

		got, ok := cache.Get("INR")
		require.True(t, ok)
		assert.Equal(t, "INR", got.Base)
		assert.True(t, got.Rates["USD"].Equal(table.Rates["USD"]))
	})

	t.Run("miss on unknown base", func(t *testing.T) {
		cache := newTestCache(t)
		_, ok := cache.Get("EUR")
		assert.False(t, ok)
	})

	t.Run("persists across instances", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.json")

		first, err := NewFileCache(path)
		require.NoError(t, err)
		require.NoError(t, first.Put("INR", inrTable()))

		second, err := NewFileCache(path)
		require.NoError(t, err)

		got, ok := second.Get("INR")
		require.True(t, ok)
		assert.True(t, got.Rates["USD"].Equal(decimal.RequireFromString("0.012031")))
	})

	t.Run("corrupt file starts empty instead of failing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		cache, err := NewFileCache(path)
		require.NoError(t, err)

		_, ok := cache.Get("INR")
		assert.False(t, ok)

		// And the cache is usable again after the next Put.
		require.NoError(t, cache.Put("INR", inrTable()))
		_, ok = cache.Get("INR")
		assert.True(t, ok)
	})

	t.Run("missing parent directory is created on write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "rates.json")

		cache, err := NewFileCache(path)
		require.NoError(t, err)
		require.NoError(t, cache.Put("INR", inrTable()))

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})
}

func TestFileCache_IsFresh(t *testing.T) {
	cache := newTestCache(t)

	fresh := inrTable()
	assert.True(t, cache.IsFresh(fresh))

	stale := inrTable()
	stale.FetchedAt = time.Now().Add(-FreshnessWindow - time.Minute)
	assert.False(t, cache.IsFresh(stale))

	assert.False(t, cache.IsFresh(nil))
}
