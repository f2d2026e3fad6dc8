package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	var got item
	ok, err := s.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "a", item{Name: "freno", N: 2}, time.Minute))
	ok, err = s.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, item{Name: "freno", N: 2}, got)

	require.NoError(t, s.Delete(ctx, "a", "b"))
	ok, err = s.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "ttl", item{N: 1}, time.Minute))
	require.NoError(t, m.Set(ctx, "forever", item{N: 2}, 0))

	now = now.Add(2 * time.Minute)
	var got item
	ok, _ := m.Get(ctx, "ttl", &got)
	assert.False(t, ok)
	ok, _ = m.Get(ctx, "forever", &got)
	assert.True(t, ok)
	assert.Equal(t, 2, got.N)
}

// Requires a Redis server; set REDIS_TEST_ADDR to run.
func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	exerciseStore(t, NewRedisFromClient(client, "motopartes-test:"))
}
