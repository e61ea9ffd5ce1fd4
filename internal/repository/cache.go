package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
)

// CachedProvider decorates a ReferenceDataProvider with a read-only snapshot
// cache refreshed out-of-band. The cache is copy-on-refresh: Refresh builds a
// complete new snapshot map and swaps it atomically, so in-flight requests
// never observe a partially updated dataset and no locks are needed on the
// read path.
type CachedProvider struct {
	inner    ReferenceDataProvider
	logger   *logging.StructuredLogger
	snapshot atomic.Pointer[map[models.Region]*models.ReferenceDataset]
}

// NewCachedProvider wraps a provider with snapshot caching.
func NewCachedProvider(inner ReferenceDataProvider, logger *logging.StructuredLogger) *CachedProvider {
	c := &CachedProvider{
		inner:  inner,
		logger: logger,
	}
	empty := make(map[models.Region]*models.ReferenceDataset)
	c.snapshot.Store(&empty)
	return c
}

// FetchRegion serves a cached snapshot when present, delegating to the inner
// provider on a miss. Misses never populate the cache in-request; only
// Refresh replaces the snapshot.
func (c *CachedProvider) FetchRegion(ctx context.Context, region models.Region) (*models.ReferenceDataset, error) {
	if ds, ok := (*c.snapshot.Load())[region]; ok {
		return ds, nil
	}
	return c.inner.FetchRegion(ctx, region)
}

// HealthCheck probes the inner provider.
func (c *CachedProvider) HealthCheck(ctx context.Context) error {
	return c.inner.HealthCheck(ctx)
}

// Refresh rebuilds the snapshot for the given regions and swaps it in.
// Regions that fail to load are left out of the new snapshot; subsequent
// fetches for them fall through to the inner provider.
func (c *CachedProvider) Refresh(ctx context.Context, regions []models.Region) error {
	fresh := make(map[models.Region]*models.ReferenceDataset, len(regions))

	var lastErr error
	for _, region := range regions {
		ds, err := c.inner.FetchRegion(ctx, region)
		if err != nil {
			lastErr = err
			c.logger.Warn(ctx, "[CACHE_REFRESH_MISS] Region not refreshed", logging.Fields{
				"region": string(region),
				"error":  err.Error(),
			})
			continue
		}
		fresh[region] = ds
	}

	c.snapshot.Store(&fresh)

	c.logger.Info(ctx, "[CACHE_REFRESH] Reference snapshot refreshed", logging.Fields{
		"regions_requested": len(regions),
		"regions_cached":    len(fresh),
	})

	return lastErr
}

// StartRefreshLoop refreshes the snapshot on an interval until ctx is done.
func (c *CachedProvider) StartRefreshLoop(ctx context.Context, interval time.Duration, regions []models.Region) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Errors are already logged per region; the loop keeps going.
				_ = c.Refresh(ctx, regions)
			}
		}
	}()
}
