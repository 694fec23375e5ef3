package store

import (
	"context"
	"sync"
	"time"

	"vatchecker/internal/vat/models"
)

type cachedOutcome struct {
	outcome   models.Outcome
	expiresAt time.Time
}

// InMemoryCache is the process-local transient tier. Registry answers live
// for the configured TTL so a long-running process never serves results
// older than the freshness window. Offline-policy answers use the shorter
// policy TTL so the registry is asked again soon after an outage.
type InMemoryCache struct {
	mu        sync.RWMutex
	outcomes  map[models.CacheKey]cachedOutcome
	cacheTTL  time.Duration
	policyTTL time.Duration
	now       func() time.Time
}

// CacheOption configures an InMemoryCache.
type CacheOption func(*InMemoryCache)

// WithCacheClock overrides the time source (tests).
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *InMemoryCache) {
		c.now = now
	}
}

// WithPolicyTTL bounds how long offline-policy outcomes are served.
// Values above the cache TTL are clamped to it.
func WithPolicyTTL(ttl time.Duration) CacheOption {
	return func(c *InMemoryCache) {
		c.policyTTL = ttl
	}
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
func NewInMemoryCache(cacheTTL time.Duration, opts ...CacheOption) *InMemoryCache {
	c := &InMemoryCache{
		outcomes:  make(map[models.CacheKey]cachedOutcome),
		cacheTTL:  cacheTTL,
		policyTTL: DefaultPolicyTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached outcome for key.
// Returns ErrNotFound if there is no entry or it has expired past the TTL.
func (c *InMemoryCache) Get(_ context.Context, key models.CacheKey) (*models.Outcome, error) {
	now := c.now()

	c.mu.RLock()
	cached, ok := c.outcomes[key]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if now.Before(cached.expiresAt) {
		out := cached.outcome
		return &out, nil
	}

	// Expired: drop it unless a concurrent Put replaced it meanwhile.
	c.mu.Lock()
	if current, ok := c.outcomes[key]; ok && !now.Before(current.expiresAt) {
		delete(c.outcomes, key)
	}
	c.mu.Unlock()
	return nil, ErrNotFound
}

// Put stores outcome under key. Last write wins.
func (c *InMemoryCache) Put(_ context.Context, key models.CacheKey, outcome models.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ttl := ttlFor(outcome, c.cacheTTL, c.policyTTL)
	c.outcomes[key] = cachedOutcome{outcome: outcome, expiresAt: c.now().Add(ttl)}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.outcomes)
}
