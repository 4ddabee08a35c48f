package cache

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"currencytracker/internal/adapters"

	"github.com/dgraph-io/ristretto"
)

// FeedCache keeps successful feed answers for a short TTL so repeated page views
// do not hit the feed on every request. Failures are never cached.
type FeedCache struct {
	next  adapters.RateFeed
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewFeedCache(next adapters.RateFeed, maxItems int64, ttl time.Duration) (*FeedCache, error) {
	// every entry costs 1, so MaxCost is an item count
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create feed cache failed: %w", err)
	}
	return &FeedCache{next: next, cache: c, ttl: ttl}, nil
}

func (c *FeedCache) FetchRates(ctx context.Context, codes []string) (map[string]float64, error) {
	key := toKey(codes)
	if v, ok := c.cache.Get(key); ok {
		if rates, ok := v.(map[string]float64); ok {
			return maps.Clone(rates), nil
		}
	}

	rates, err := c.next.FetchRates(ctx, codes)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(key, maps.Clone(rates), 1, c.ttl)
	return rates, nil
}

// Invalidate drops every cached answer.
func (c *FeedCache) Invalidate() { c.cache.Clear() }

// Wait blocks until pending writes are visible to FetchRates.
func (c *FeedCache) Wait() { c.cache.Wait() }

func (c *FeedCache) Close() { c.cache.Close() }

// toKey is order and duplicate insensitive.
func toKey(codes []string) string {
	sorted := slices.Clone(codes)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), ",")
}
