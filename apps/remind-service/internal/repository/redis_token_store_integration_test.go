package repository

import (
	"context"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ms-You/poje-remind/pkg/redis"
)

func skipIfNoRedis(t *testing.T) *redis.Client {
	t.Helper()
	host := os.Getenv("TEST_REDIS_HOST")
	if host == "" {
		t.Skip("Skipping integration test - set TEST_REDIS_HOST to run")
	}

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Password = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.DB = 1

	client, err := redis.NewClient(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping integration test - Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisTokenStore_Integration_Lifecycle(t *testing.T) {
	client := skipIfNoRedis(t)
	store := NewRedisTokenStore(client)
	ctx := context.Background()
	loginID := "it-" + time.Now().Format("150405.000000")

	require.NoError(t, store.SaveRefreshToken(ctx, loginID, "rt-1", time.Minute))
	got, err := store.GetRefreshToken(ctx, loginID)
	require.NoError(t, err)
	assert.Equal(t, "rt-1", got)

	ok, err := store.RotateRefreshToken(ctx, loginID, "rt-1", "rt-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.RotateRefreshToken(ctx, loginID, "rt-1", "rt-3", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.DeleteRefreshToken(ctx, loginID))
	got, err = store.GetRefreshToken(ctx, loginID)
	require.NoError(t, err)
	assert.Empty(t, got)

	access := "access-" + loginID
	require.NoError(t, store.MarkLoggedOut(ctx, access, time.Minute))
	out, err := store.IsLoggedOut(ctx, access)
	require.NoError(t, err)
	assert.True(t, out)

	raw := goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(os.Getenv("TEST_REDIS_HOST"), "6379"),
		Password: os.Getenv("TEST_REDIS_PASSWORD"),
		DB:       1,
	})
	defer raw.Close()
	ttl, err := raw.TTL(ctx, blacklistKey(access)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
	_ = client.Del(ctx, blacklistKey(access))
}

func TestRedisTokenStore_Integration_ConcurrentRotate(t *testing.T) {
	client := skipIfNoRedis(t)
	store := NewRedisTokenStore(client)
	ctx := context.Background()
	loginID := "it-race-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = store.DeleteRefreshToken(ctx, loginID) })

	require.NoError(t, store.SaveRefreshToken(ctx, loginID, "rt-1", time.Minute))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := store.RotateRefreshToken(ctx, loginID, "rt-1", "next", time.Minute); err == nil && ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}
