package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestLocker_EditKey(t *testing.T) {
	_, client := newLocker(t)
	assert.Equal(t, "automata:edit:ends-with-b", redis.NewLocker(client, redis.DefaultLockPrefix).EditKey("ends-with-b"))
	assert.NotEqual(t, redis.DefaultPrefix+"ends-with-b", redis.NewLocker(client, redis.DefaultLockPrefix).EditKey("ends-with-b"))
}

func TestLocker_LockUnlock(t *testing.T) {
	mr, client := newLocker(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "ends-with-b", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)

	assert.True(t, mr.Exists("test:edit:ends-with-b"))
	assert.Equal(t, 5*time.Second, mr.TTL("test:edit:ends-with-b"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:edit:ends-with-b"))
}

func TestLocker_Contention(t *testing.T) {
	mr, client := newLocker(t)
	replicaA := redis.NewLocker(client, "test:")
	replicaB := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlockA, err := replicaA.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = replicaB.Lock(waitCtx, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.WithinDuration(t, start.Add(300*time.Millisecond), time.Now(), 150*time.Millisecond)

	// Other automata are not blocked.
	unlockOther, err := replicaB.Lock(ctx, "other", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlockOther(ctx))

	require.NoError(t, unlockA(ctx))

	unlockB, err := replicaB.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:edit:shared"))
	require.NoError(t, unlockB(ctx))
}

func TestLocker_ExpiredHolderCannotRelease(t *testing.T) {
	mr, client := newLocker(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	stale, err := locker.Lock(ctx, "shared", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	fresh, err := locker.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("test:edit:shared"), "stale release must leave the new holder's key")

	require.NoError(t, fresh(ctx))
	assert.False(t, mr.Exists("test:edit:shared"))
}
