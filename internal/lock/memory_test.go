package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLockerAcquireRelease(t *testing.T) {
	ml := NewMemoryLocker()
	defer ml.Stop()
	ctx := context.Background()

	acquired, err := ml.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	// Second acquire on a held lock fails.
	acquired, err = ml.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.False(t, acquired)

	released, err := ml.Release(ctx, "k")
	require.NoError(t, err)
	require.True(t, released)

	// Released lock can be taken again.
	acquired, err = ml.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestMemoryLockerExpiredLockIsReacquirable(t *testing.T) {
	ml := NewMemoryLocker()
	defer ml.Stop()
	ctx := context.Background()

	acquired, err := ml.Acquire(ctx, "k", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(20 * time.Millisecond)

	acquired, err = ml.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestMemoryLockerStopIsIdempotent(t *testing.T) {
	ml := NewMemoryLocker()

	ml.Stop()
	ml.Stop() // must not panic on a second call

	// Locking still works after the cleanup goroutine is gone; entries
	// expire lazily on acquire.
	acquired, err := ml.Acquire(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
}
