package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vatchecker/internal/vat/models"
)

func TestInMemoryCache_PutGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	cache := NewInMemoryCache(24*time.Hour, WithCacheClock(func() time.Time { return now }))
	key := models.CacheKey{Country: "NL", Number: "123456789B01"}

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, cache.Put(ctx, key, models.ValidOutcome(models.SourceRegistry, now)))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, models.StatusValid, got.Status)

	other := models.CacheKey{Country: "BE", Number: "123456789B01"}
	_, err = cache.Get(ctx, other)
	assert.ErrorIs(t, err, ErrNotFound, "keys are scoped by country")
}

func TestInMemoryCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	cache := NewInMemoryCache(24*time.Hour, WithCacheClock(func() time.Time { return now }))
	key := models.CacheKey{Country: "DE", Number: "123456789"}

	require.NoError(t, cache.Put(ctx, key, models.ValidOutcome(models.SourceRegistry, now)))

	now = now.Add(23 * time.Hour)
	_, err := cache.Get(ctx, key)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, cache.Len(), "expired entry is dropped")
}

// Justification: an outage guess must not hold a number for the whole
// freshness window once the registry is back.
func TestInMemoryCache_PolicyOutcomesExpireSooner(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	cache := NewInMemoryCache(24*time.Hour,
		WithCacheClock(func() time.Time { return now }),
		WithPolicyTTL(30*time.Second),
	)
	guessed := models.CacheKey{Country: "FR", Number: "12345678901"}
	checked := models.CacheKey{Country: "NL", Number: "123456789B01"}

	require.NoError(t, cache.Put(ctx, guessed, models.BoolOutcome(false, models.SourceOfflinePolicy, now)))
	require.NoError(t, cache.Put(ctx, checked, models.ValidOutcome(models.SourceRegistry, now)))

	now = now.Add(29 * time.Second)
	_, err := cache.Get(ctx, guessed)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = cache.Get(ctx, guessed)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.Get(ctx, checked)
	assert.NoError(t, err, "registry answers keep the full TTL")
}

func TestTTLFor_ClampsPolicyTTL(t *testing.T) {
	policyOutcome := models.BoolOutcome(true, models.SourceOfflinePolicy, time.Time{})
	assert.Equal(t, time.Minute, ttlFor(policyOutcome, time.Minute, time.Hour))
	assert.Equal(t, 30*time.Second, ttlFor(policyOutcome, time.Hour, 30*time.Second))
	assert.Equal(t, time.Hour, ttlFor(models.ValidOutcome(models.SourceRegistry, time.Time{}), time.Hour, 30*time.Second))
}

// TestInMemoryCache_ConcurrentAccess exercises readers and writers on the
// same key; run with -race.
func TestInMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCache(time.Hour)
	key := models.CacheKey{Country: "FR", Number: "12345678901"}

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cache.Put(ctx, key, models.BoolOutcome(i%2 == 0, models.SourceRegistry, time.Now()))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(ctx, key)
		}()
	}
	wg.Wait()

	_, err := cache.Get(ctx, key)
	assert.NoError(t, err)
}
