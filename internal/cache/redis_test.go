package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NathanBartolo/echo/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startRedis launches a throwaway Redis and returns its address.
func startRedis(t *testing.T) RedisOptions {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return RedisOptions{Addr: endpoint}
}

func exerciseRedisCache(t *testing.T, c core.Cache[map[string]int]) {
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "a", map[string]int{"x": 1}, time.Minute))
	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, got)

	require.NoError(t, c.MSet(ctx, map[string]map[string]int{
		"b": {"y": 2},
		"c": {"z": 3},
	}, time.Minute))
	many, err := c.MGet(ctx, []string{"a", "b", "c", "nope"})
	require.NoError(t, err)
	assert.Len(t, many, 3)

	require.NoError(t, c.Delete(ctx, "a"))
	assert.Eventually(t, func() bool {
		_, err := c.Get(ctx, "a")
		return errors.Is(err, ErrCacheMiss)
	}, 2*time.Second, 50*time.Millisecond)

	fetched, err := c.GetWithFetch(ctx, "f", time.Minute, func(context.Context, string) (map[string]int, error) {
		return map[string]int{"fetched": 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched["fetched"])

	assert.NoError(t, c.Health(ctx))
}

func TestRueidisCache(t *testing.T) {
	opts := startRedis(t)

	c, err := NewRueidisCache[map[string]int](context.Background(), opts, "echo:test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	exerciseRedisCache(t, c)
}

func TestRueidisAsideCache(t *testing.T) {
	opts := startRedis(t)

	c, err := NewRueidisAsideCache[map[string]int](
		context.Background(), opts, "echo:aside:", 30*time.Second, 1,
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	exerciseRedisCache(t, c)
}

func TestNewRueidisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRueidisCache[int64](ctx, RedisOptions{Addr: "127.0.0.1:1"}, "x:")
	assert.Error(t, err)
}
