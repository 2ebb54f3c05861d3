package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) *PageCacheBadger {
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPageCacheBadger(db)
}

func TestPageCacheBadger(t *testing.T) {
	ctx := context.Background()
	c := setupTestCache(t)

	t.Run("miss", func(t *testing.T) {
		val, ok, err := c.Get(ctx, "index_page:anonymous:/")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "index_page:anonymous:/", []byte("<p>cached</p>"), time.Minute))

		val, ok, err := c.Get(ctx, "index_page:anonymous:/")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "<p>cached</p>", string(val))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "index_page:anonymous:/", []byte("<p>new</p>"), time.Minute))

		val, _, err := c.Get(ctx, "index_page:anonymous:/")
		require.NoError(t, err)
		assert.Equal(t, "<p>new</p>", string(val))
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "other", []byte("x"), time.Minute))
		require.NoError(t, c.Clear(ctx))

		_, ok, err := c.Get(ctx, "index_page:anonymous:/")
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = c.Get(ctx, "other")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPageCacheBadgerExpiry(t *testing.T) {
	ctx := context.Background()
	c := setupTestCache(t)

	require.NoError(t, c.Set(ctx, "index", []byte("x"), time.Second))
	time.Sleep(2100 * time.Millisecond)

	_, ok, err := c.Get(ctx, "index")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageCacheBadgerServesWholeTTL(t *testing.T) {
	ctx := context.Background()
	c := setupTestCache(t)

	start := time.Date(2024, 1, 1, 12, 0, 0, 700_000_000, time.UTC)
	clock := start
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Set(ctx, "index", []byte("<p>page</p>"), time.Second))

	clock = start.Add(999 * time.Millisecond)
	val, ok, err := c.Get(ctx, "index")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>page</p>", string(val))

	clock = start.Add(time.Second)
	_, ok, err = c.Get(ctx, "index")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageCacheBadgerSubSecondTTL(t *testing.T) {
	ctx := context.Background()
	c := setupTestCache(t)

	require.NoError(t, c.Set(ctx, "index", []byte("x"), 300*time.Millisecond))

	val, ok, err := c.Get(ctx, "index")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(val))

	time.Sleep(400 * time.Millisecond)
	_, ok, err = c.Get(ctx, "index")
	require.NoError(t, err)
	assert.False(t, ok)
}
