package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) *RedisGuard {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisGuardFromClient(client)
}

func TestAcquire_ClaimsSlotOnce(t *testing.T) {
	guard := newTestGuard(t)
	day := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	ok, err := guard.Acquire(context.Background(), day, 3, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second instance loses the same slot.
	ok, err = guard.Acquire(context.Background(), day, 3, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAcquire_SlotsAreIndependent(t *testing.T) {
	guard := newTestGuard(t)
	day := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	ok, err := guard.Acquire(context.Background(), day, 3, 42)
	require.NoError(t, err)
	require.True(t, ok)

	// Different offset, client, or day are separate slots.
	ok, err = guard.Acquire(context.Background(), day, 1, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Acquire(context.Background(), day, 3, 43)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Acquire(context.Background(), day.AddDate(0, 0, 1), 3, 42)
	require.NoError(t, err)
	assert.True(t, ok)
}
