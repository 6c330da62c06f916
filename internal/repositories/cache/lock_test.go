package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient connects to TEST_REDIS_ADDR, skipping when it is unset.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, HealthCheck(context.Background(), client))
	t.Cleanup(func() { client.Close() })
	return client
}

func TestLocker_Acquire(t *testing.T) {
	client := testClient(t)
	locker := NewLocker(client)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	release, acquired, err := locker.Acquire(ctx, key, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	_, acquired, err = locker.Acquire(ctx, key, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, acquired, "second holder must be refused")

	release()
	release()

	release, acquired, err = locker.Acquire(ctx, key, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
	release()
}

func TestLocker_ReleaseKeepsForeignLock(t *testing.T) {
	client := testClient(t)
	locker := NewLocker(client)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	release, acquired, err := locker.Acquire(ctx, key, 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)

	// TTL expires and someone else takes over
	time.Sleep(100 * time.Millisecond)
	release2, acquired, err := locker.Acquire(ctx, key, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)
	defer release2()

	release()

	exists, err := client.Exists(ctx, LockKeyPrefix+key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
