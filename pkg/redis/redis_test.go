package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varshasramu/Smart-library-assistant/internal/entity"
)

func newTestCache(t *testing.T, ttl time.Duration) (IRedis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewWithClient(client, ttl), mr
}

func TestCatalogCache_RoundTrip(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, err := cache.GetCatalog(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	books := []entity.Book{
		{ID: "1", Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy", Available: true, Copies: 3},
		{ID: "2", Title: "Cosmos", Author: "Carl Sagan", Genre: "Science", Copies: 0},
	}
	require.NoError(t, cache.SetCatalog(ctx, 0, books))
	assert.Equal(t, time.Minute, mr.TTL(catalogKey))

	got, err := cache.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, books, got)

	require.NoError(t, cache.InvalidateCatalog(ctx))
	_, err = cache.GetCatalog(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCatalogCache_InvalidationRejectsOlderSnapshot(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	version, err := cache.CatalogVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	require.NoError(t, cache.InvalidateCatalog(ctx))

	err = cache.SetCatalog(ctx, version, []entity.Book{{ID: "1", Title: "Cosmos", Copies: 1}})
	assert.ErrorIs(t, err, ErrStaleSnapshot)
	assert.False(t, mr.Exists(catalogKey))

	current, err := cache.CatalogVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)

	require.NoError(t, cache.SetCatalog(ctx, current, []entity.Book{{ID: "1", Title: "Cosmos"}}))
	assert.True(t, mr.Exists(catalogKey))
}

func TestCatalogCache_Expiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetCatalog(ctx, 0, []entity.Book{{ID: "1", Title: "Cosmos"}}))
	mr.FastForward(2 * time.Minute)

	_, err := cache.GetCatalog(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCatalogCache_CorruptPayloadIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t, 0)

	require.NoError(t, mr.Set(catalogKey, "{not json"))

	_, err := cache.GetCatalog(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCatalogTTLFromEnv(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "90s")
	assert.Equal(t, 90*time.Second, catalogTTLFromEnv())

	t.Setenv("CATALOG_CACHE_TTL", "soon")
	assert.Equal(t, defaultCatalogTTL, catalogTTLFromEnv())
}
