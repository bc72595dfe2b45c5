package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sitepay-client/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	err := cache.Set(ctx, "payment:1", expected, time.Minute)
	require.NoError(t, err)

	var actual testStruct
	found, err := cache.Get(ctx, "payment:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "payment:2", testStruct{Name: "Bob"}, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "payment:2"))

	var out testStruct
	found, err := cache.Get(ctx, "payment:2", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMarkProcessed(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	first, err := cache.MarkProcessed(ctx, 77, time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	// Повторная доставка того же уведомления.
	second, err := cache.MarkProcessed(ctx, 77, time.Hour)
	require.NoError(t, err)
	assert.False(t, second)

	other, err := cache.MarkProcessed(ctx, 78, time.Hour)
	require.NoError(t, err)
	assert.True(t, other)
}
