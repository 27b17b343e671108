// Package cache provides caching for engine predictions.
package cache

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/WarenOdhiambo1/lead-magnet/internal/metrics"
	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

// Key identifies a prediction by the inputs that fully determine it
type Key struct {
	LambdaHome float64
	LambdaAway float64
	MaxGoals   int
	Rho        float64
}

// String returns string representation of cache key. Rates are formatted
// exactly so that distinct inputs never share an entry.
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d:%s",
		strconv.FormatFloat(k.LambdaHome, 'g', -1, 64),
		strconv.FormatFloat(k.LambdaAway, 'g', -1, 64),
		k.MaxGoals,
		strconv.FormatFloat(k.Rho, 'g', -1, 64),
	)
}

// PredictionCache provides in-memory caching for match predictions
type PredictionCache struct {
	cache     *gocache.Cache
	ttl       time.Duration
	maxSize   int
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   gocache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached prediction
func (pc *PredictionCache) Get(key Key) (quant.MatchPrediction, bool) {
	if v, found := pc.cache.Get(key.String()); found {
		if pred, ok := v.(quant.MatchPrediction); ok {
			pc.hitCount.Add(1)
			pc.updateMetrics()
			return pred, true
		}
	}

	pc.missCount.Add(1)
	pc.updateMetrics()
	return quant.MatchPrediction{}, false
}

// Set stores a prediction in cache. When the cache is full, expired items
// are purged first and the new entry is dropped if there is still no room.
func (pc *PredictionCache) Set(key Key, prediction quant.MatchPrediction) {
	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
		if pc.cache.ItemCount() >= pc.maxSize {
			return
		}
	}

	pc.cache.Set(key.String(), prediction, pc.ttl)
}

// GetOrCompute returns the cached prediction for key or computes and stores it
func (pc *PredictionCache) GetOrCompute(key Key, compute func() (quant.MatchPrediction, error)) (quant.MatchPrediction, bool, error) {
	if pred, ok := pc.Get(key); ok {
		return pred, true, nil
	}

	pred, err := compute()
	if err != nil {
		return quant.MatchPrediction{}, false, err
	}
	pc.Set(key, pred)
	return pred, false, nil
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.cache.Flush()
	pc.hitCount.Store(0)
	pc.missCount.Store(0)
	pc.updateMetrics()
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	hits = pc.hitCount.Load()
	misses = pc.missCount.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}

func (pc *PredictionCache) updateMetrics() {
	_, _, ratio := pc.Stats()
	metrics.UpdateCacheStats(ratio, pc.cache.ItemCount())
}
