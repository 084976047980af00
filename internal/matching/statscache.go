// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package matching

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// StatsSource supplies worker statistics, typically backed by the
// aggregator's table in the store.
type StatsSource interface {
	WorkerStats(ctx context.Context, workerID uuid.UUID) (stats WorkerStats, found bool, err error)
}

type statsCacheValue struct {
	stats WorkerStats
	found bool
}

// CachedStatsSource wraps a StatsSource with a TTL cache so that ranking the
// same candidate pool repeatedly within a short window does not re-query the
// store per worker. Misses are cached for the same TTL; load errors are
// returned uncached so a transient failure never poisons an entry.
type CachedStatsSource struct {
	src   StatsSource
	cache *ttlcache.Cache[uuid.UUID, statsCacheValue]
}

// NewCachedStatsSource builds a cache over src with the given TTL.
func NewCachedStatsSource(src StatsSource, ttl time.Duration) *CachedStatsSource {
	c := &CachedStatsSource{
		src: src,
		cache: ttlcache.New(
			ttlcache.WithTTL[uuid.UUID, statsCacheValue](ttl),
		),
	}
	go c.cache.Start()
	return c
}

// WorkerStats returns the cached statistics for a worker, loading through to
// the underlying source on a miss. Only successful loads are cached.
func (c *CachedStatsSource) WorkerStats(ctx context.Context, workerID uuid.UUID) (WorkerStats, bool, error) {
	var loadErr error
	loader := ttlcache.LoaderFunc[uuid.UUID, statsCacheValue](
		func(cache *ttlcache.Cache[uuid.UUID, statsCacheValue], key uuid.UUID) *ttlcache.Item[uuid.UUID, statsCacheValue] {
			stats, found, err := c.src.WorkerStats(ctx, key)
			if err != nil {
				loadErr = err
				return nil
			}
			return cache.Set(key, statsCacheValue{stats: stats, found: found}, ttlcache.DefaultTTL)
		},
	)
	v := c.cache.Get(workerID, ttlcache.WithLoader(loader))
	if loadErr != nil {
		return WorkerStats{}, false, loadErr
	}
	if v == nil {
		return WorkerStats{}, false, errors.New("failed to load worker stats from cache")
	}
	val := v.Value()
	return val.stats, val.found, nil
}

// Invalidate drops a worker's cached entry, for callers that just updated
// the underlying statistics.
func (c *CachedStatsSource) Invalidate(workerID uuid.UUID) {
	c.cache.Delete(workerID)
}

// Stop shuts down the cache's expiry goroutine.
func (c *CachedStatsSource) Stop() {
	c.cache.Stop()
}
