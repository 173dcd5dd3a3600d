package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/backoffice/pkg/cache"
)

func TestInMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("expires entries", func(t *testing.T) {
		t.Parallel()

		now := time.Unix(1_700_000_000, 0)
		c := NewInMemoryCache(10).(*inMemoryCache)
		c.lru = cache.New[string, *Tenant](10, cache.WithClock(func() time.Time { return now }))

		acme := &Tenant{Slug: "acme"}
		c.Set(ctx, "acme", acme, time.Minute)

		got, ok := c.Get(ctx, "acme")
		assert.True(t, ok)
		assert.Same(t, acme, got)

		now = now.Add(time.Minute)
		_, ok = c.Get(ctx, "acme")
		assert.False(t, ok)
		assert.Zero(t, c.lru.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := NewInMemoryCache(2)
		c.Set(ctx, "a", &Tenant{Slug: "a"}, time.Hour)
		c.Set(ctx, "b", &Tenant{Slug: "b"}, time.Hour)

		_, _ = c.Get(ctx, "a")
		c.Set(ctx, "c", &Tenant{Slug: "c"}, time.Hour)

		_, ok := c.Get(ctx, "b")
		assert.False(t, ok, "b was least recently used")
		_, ok = c.Get(ctx, "a")
		assert.True(t, ok)
		_, ok = c.Get(ctx, "c")
		assert.True(t, ok)
	})

	t.Run("set overwrites and delete removes", func(t *testing.T) {
		t.Parallel()

		c := NewInMemoryCache(2)
		c.Set(ctx, "a", &Tenant{Name: "old"}, time.Hour)
		c.Set(ctx, "a", &Tenant{Name: "new"}, time.Hour)

		got, ok := c.Get(ctx, "a")
		assert.True(t, ok)
		assert.Equal(t, "new", got.Name)

		c.Delete(ctx, "a")
		_, ok = c.Get(ctx, "a")
		assert.False(t, ok)
	})

	t.Run("non-positive ttl is not stored", func(t *testing.T) {
		t.Parallel()

		c := NewInMemoryCache(2)
		c.Set(ctx, "a", &Tenant{}, 0)
		_, ok := c.Get(ctx, "a")
		assert.False(t, ok)
	})
}

func TestNoopCache(t *testing.T) {
	t.Parallel()

	c := NewNoopCache()
	c.Set(context.Background(), "a", &Tenant{}, time.Hour)
	_, ok := c.Get(context.Background(), "a")
	assert.False(t, ok)
}
