package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) (*ApplyGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewApplyGuard(client), mr
}

func TestApplyGuard_AcquireRelease(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "job-1", "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Acquire(ctx, "job-1", "user-1")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	ok, err = guard.Acquire(ctx, "job-1", "user-2")
	require.NoError(t, err)
	assert.True(t, ok, "other users are independent")

	require.NoError(t, guard.Release(ctx, "job-1", "user-1"))
	assert.False(t, mr.Exists("apply:job-1:user-1"))

	ok, err = guard.Acquire(ctx, "job-1", "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApplyGuard_Expires(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "job-1", "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, applyGuardTTL, mr.TTL("apply:job-1:user-1"))

	mr.FastForward(applyGuardTTL + time.Second)

	ok, err = guard.Acquire(ctx, "job-1", "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApplyGuard_ServerDown(t *testing.T) {
	guard, mr := newTestGuard(t)
	mr.Close()

	_, err := guard.Acquire(context.Background(), "job-1", "user-1")
	assert.Error(t, err)
}
