package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()

	now := time.Unix(1_700_000_000, 0)
	ms := NewMemoryStore(WithCleanupInterval(0))
	ms.now = func() time.Time { return now }
	t.Cleanup(ms.Close)
	return ms, &now
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	store, _ := newClockedStore(t)

	tests := []Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	}
	for _, cfg := range tests {
		_, err := NewBucket(store, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig, "config %+v", cfg)
	}

	b, err := NewBucket(store, Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)
	_, err = b.AllowN(context.Background(), "acme", 0)
	assert.ErrorIs(t, err, ErrInvalidTokenCount)
}

func TestBucket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("burst then deny then refill", func(t *testing.T) {
		t.Parallel()

		store, now := newClockedStore(t)
		b, err := NewBucket(store, Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})
		require.NoError(t, err)

		for i := range 3 {
			res, err := b.Allow(ctx, "acme")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, 2-i, res.Remaining)
			assert.Equal(t, 3, res.Limit)
		}

		res, err := b.Allow(ctx, "acme")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Equal(t, -1, res.Remaining)

		*now = now.Add(time.Second)
		res, err = b.Allow(ctx, "acme")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("denied requests do not consume", func(t *testing.T) {
		t.Parallel()

		store, now := newClockedStore(t)
		b, err := NewBucket(store, Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
		require.NoError(t, err)

		_, err = b.Allow(ctx, "acme")
		require.NoError(t, err)
		for range 5 {
			res, err := b.Allow(ctx, "acme")
			require.NoError(t, err)
			assert.False(t, res.Allowed())
		}

		*now = now.Add(time.Second)
		res, err := b.Allow(ctx, "acme")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("refill is capped at capacity", func(t *testing.T) {
		t.Parallel()

		store, now := newClockedStore(t)
		b, err := NewBucket(store, Config{Capacity: 2, RefillRate: 5, RefillInterval: time.Second})
		require.NoError(t, err)

		_, err = b.AllowN(ctx, "acme", 2)
		require.NoError(t, err)

		*now = now.Add(24 * time.Hour)
		res, err := b.Allow(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		store, _ := newClockedStore(t)
		b, err := NewBucket(store, Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		require.NoError(t, err)

		res, _ := b.Allow(ctx, "acme")
		assert.True(t, res.Allowed())
		res, _ = b.Allow(ctx, "globex")
		assert.True(t, res.Allowed())
		res, _ = b.Allow(ctx, "acme")
		assert.False(t, res.Allowed())

		require.NoError(t, b.Reset(ctx, "acme"))
		res, _ = b.Allow(ctx, "acme")
		assert.True(t, res.Allowed())
	})

	t.Run("concurrent takes never exceed capacity", func(t *testing.T) {
		t.Parallel()

		store, _ := newClockedStore(t)
		b, err := NewBucket(store, Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})
		require.NoError(t, err)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for range 200 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := b.Allow(ctx, "acme")
				if err == nil && res.Allowed() {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, allowed)
	})
}

func TestResultRetryAfter(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Result{Remaining: 0, ResetAt: time.Now().Add(time.Hour)}.RetryAfter())
	assert.Zero(t, Result{Remaining: -1, ResetAt: time.Now().Add(-time.Hour)}.RetryAfter())

	d := Result{Remaining: -1, ResetAt: time.Now().Add(time.Minute)}.RetryAfter()
	assert.Greater(t, d, 50*time.Second)
}

func TestMemoryStoreRemoveStale(t *testing.T) {
	t.Parallel()

	store, now := newClockedStore(t)
	cfg := Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}

	_, _, err := store.Take(context.Background(), "old", 1, cfg)
	require.NoError(t, err)
	*now = now.Add(2 * time.Hour)
	_, _, err = store.Take(context.Background(), "fresh", 1, cfg)
	require.NoError(t, err)

	store.removeStale(time.Hour)
	assert.NotContains(t, store.buckets, "old")
	assert.Contains(t, store.buckets, "fresh")

	store.Close()
	store.Close()
}
