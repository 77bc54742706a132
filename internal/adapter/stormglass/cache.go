package stormglass

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/couchcryptid/surf-forecast-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultCacheTTL is how long fetched points are served from memory.
const DefaultCacheTTL = time.Hour

// CachedClient wraps a PointFetcher with an in-memory TTL cache keyed by coordinate.
// Callers receive their own copy of the cached points.
type CachedClient struct {
	inner   domain.PointFetcher
	cache   *ttlCache
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewCachedClient creates a cache decorator around a point fetcher.
func NewCachedClient(inner domain.PointFetcher, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		inner:   inner,
		cache:   newTTLCache(clock),
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchPoints returns cached points for the coordinate when present and
// unexpired, otherwise fetches, caches and returns them. Errors are not cached.
func (c *CachedClient) FetchPoints(ctx context.Context, lat, lng float64) ([]domain.ForecastPoint, error) {
	key := CacheKey(lat, lng)
	if points, ok := c.cache.get(key); ok {
		c.metrics.StormGlassCache.WithLabelValues("hit").Inc()
		c.logger.Info("using cache to return forecast points", "lat", lat, "lng", lng)
		return points, nil
	}
	c.metrics.StormGlassCache.WithLabelValues("miss").Inc()

	points, err := c.inner.FetchPoints(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	c.logger.Info("updating cache to return forecast points", "key", key, "ttl", c.ttl)
	c.cache.set(key, points, c.ttl)
	return points, nil
}

// CacheKey is the cache key for a coordinate, e.g. forecast_points_-33.792726_151.289824.
func CacheKey(lat, lng float64) string {
	return "forecast_points_" + formatCoordinate(lat) + "_" + formatCoordinate(lng)
}

// ttlCache is a thread-safe map whose entries expire after a per-entry TTL.
// Expired entries are removed on lookup of their key and swept on every set.
type ttlCache struct {
	clock   clockwork.Clock
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	points    []domain.ForecastPoint
	expiresAt time.Time
}

func newTTLCache(clock clockwork.Clock) *ttlCache {
	return &ttlCache{
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func (c *ttlCache) get(key string) ([]domain.ForecastPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return slices.Clone(e.points), true
}

func (c *ttlCache) set(key string, points []domain.ForecastPoint, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{
		points:    slices.Clone(points),
		expiresAt: now.Add(ttl),
	}
}

func (c *ttlCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
