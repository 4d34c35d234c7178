package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"

	"github.com/polyscan/polyscan/pkg/types"
)

const (
	// counterRatio is how many frequency counters Ristretto keeps per
	// cached summary.
	counterRatio = 10

	// getBufferItems is Ristretto's Get buffer size.
	getBufferItems = 64
)

// RistrettoCache is a profit-summary cache backed by Ristretto. Each
// summary costs 1, so capacity is counted in actors, not bytes.
type RistrettoCache struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// RistrettoConfig holds configuration for the summary cache.
type RistrettoConfig struct {
	MaxActors int64 // capacity in cached summaries
	Logger    *zap.Logger
}

// NewRistrettoCache creates a new Ristretto-backed summary cache.
func NewRistrettoCache(cfg *RistrettoConfig) (Cache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.MaxActors * counterRatio,
		MaxCost:     cfg.MaxActors,
		BufferItems: getBufferItems,
		Metrics:     true, // Enable metrics
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{
		cache:  cache,
		logger: cfg.Logger,
	}, nil
}

// profitKey namespaces actor ids so the cache can hold other record kinds
// later without collisions.
func profitKey(actorID string) string {
	return "profit:" + actorID
}

// Get retrieves the cached summary for an actor.
func (r *RistrettoCache) Get(actorID string) (*types.ProfitSummary, bool) {
	value, found := r.cache.Get(profitKey(actorID))
	if !found {
		CacheMissesTotal.Inc()
		r.logger.Debug("cache-miss", zap.String("actor", actorID))
		return nil, false
	}

	summary, ok := value.(*types.ProfitSummary)
	if !ok {
		CacheMissesTotal.Inc()
		r.logger.Warn("cache-entry-wrong-type", zap.String("actor", actorID))
		return nil, false
	}

	CacheHitsTotal.Inc()
	r.logger.Debug("cache-hit", zap.String("actor", actorID))
	return summary, true
}

// Set stores an actor's summary with a TTL.
func (r *RistrettoCache) Set(actorID string, summary *types.ProfitSummary, ttl time.Duration) bool {
	// Cost = 1 (we're counting summaries, not bytes)
	success := r.cache.SetWithTTL(profitKey(actorID), summary, 1, ttl)
	if success {
		CacheSetsTotal.Inc()
		r.logger.Debug("cache-set",
			zap.String("actor", actorID),
			zap.Duration("ttl", ttl))
	}
	return success
}

// Delete removes an actor's summary.
func (r *RistrettoCache) Delete(actorID string) {
	r.cache.Del(profitKey(actorID))
	CacheDeletesTotal.Inc()
	r.logger.Debug("cache-delete", zap.String("actor", actorID))
}

// Clear removes all cached summaries.
func (r *RistrettoCache) Clear() {
	r.cache.Clear()
	r.logger.Info("cache-cleared")
}

// Close closes the cache and releases resources.
func (r *RistrettoCache) Close() {
	r.cache.Close()
	r.logger.Info("cache-closed")
}

// Metrics returns Ristretto's internal metrics.
func (r *RistrettoCache) Metrics() *ristretto.Metrics {
	return r.cache.Metrics
}

// Wait blocks until all pending writes have been applied.
// This is useful for testing or when you need to ensure a value is cached.
func (r *RistrettoCache) Wait() {
	r.cache.Wait()
}
