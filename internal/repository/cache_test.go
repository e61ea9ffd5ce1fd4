package repository

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
)

// fakeProvider counts fetches and serves a configurable dataset per region.
type fakeProvider struct {
	mu       sync.Mutex
	fetches  map[models.Region]int
	datasets map[models.Region]*models.ReferenceDataset
	err      error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		fetches:  make(map[models.Region]int),
		datasets: make(map[models.Region]*models.ReferenceDataset),
	}
}

func (f *fakeProvider) FetchRegion(ctx context.Context, region models.Region) (*models.ReferenceDataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches[region]++
	if f.err != nil {
		return nil, f.err
	}
	if ds, ok := f.datasets[region]; ok {
		return ds, nil
	}
	return nil, ErrDataUnavailable
}

func (f *fakeProvider) HealthCheck(ctx context.Context) error {
	return f.err
}

func (f *fakeProvider) fetchCount(region models.Region) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[region]
}

func testLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("test", "0.0.0", logging.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

func gujaratDataset() *models.ReferenceDataset {
	return &models.ReferenceDataset{
		Region: models.RegionGujarat,
		Renewable: []models.RenewablePotentialRecord{
			{SiteName: "Bhuj_Solar_Park", State: "Gujarat", Latitude: 23.241, Longitude: 69.669},
		},
	}
}

func TestCachedProvider_ServesSnapshotAfterRefresh(t *testing.T) {
	inner := newFakeProvider()
	inner.datasets[models.RegionGujarat] = gujaratDataset()

	cached := NewCachedProvider(inner, testLogger())
	ctx := context.Background()

	if err := cached.Refresh(ctx, []models.Region{models.RegionGujarat}); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}

	before := inner.fetchCount(models.RegionGujarat)

	for i := 0; i < 5; i++ {
		ds, err := cached.FetchRegion(ctx, models.RegionGujarat)
		if err != nil {
			t.Fatalf("FetchRegion() unexpected error: %v", err)
		}
		if len(ds.Renewable) != 1 {
			t.Fatalf("cached dataset has %d renewable records, want 1", len(ds.Renewable))
		}
	}

	if got := inner.fetchCount(models.RegionGujarat); got != before {
		t.Errorf("cache hits reached the inner provider: %d fetches after refresh, want %d", got, before)
	}
}

func TestCachedProvider_MissDelegatesWithoutPopulating(t *testing.T) {
	inner := newFakeProvider()
	inner.datasets[models.RegionRajasthan] = &models.ReferenceDataset{Region: models.RegionRajasthan}

	cached := NewCachedProvider(inner, testLogger())
	ctx := context.Background()

	// No refresh: every fetch is a miss that delegates to the inner provider.
	for i := 0; i < 3; i++ {
		if _, err := cached.FetchRegion(ctx, models.RegionRajasthan); err != nil {
			t.Fatalf("FetchRegion() unexpected error: %v", err)
		}
	}

	if got := inner.fetchCount(models.RegionRajasthan); got != 3 {
		t.Errorf("inner fetches = %d, want 3; misses must not populate the snapshot", got)
	}
}

func TestCachedProvider_RefreshSkipsFailedRegions(t *testing.T) {
	inner := newFakeProvider()
	inner.datasets[models.RegionGujarat] = gujaratDataset()

	cached := NewCachedProvider(inner, testLogger())
	ctx := context.Background()

	regions := []models.Region{models.RegionGujarat, models.RegionKarnataka}
	err := cached.Refresh(ctx, regions)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Refresh() error = %v, want ErrDataUnavailable for the failed region", err)
	}

	// The successful region is cached.
	before := inner.fetchCount(models.RegionGujarat)
	if _, err := cached.FetchRegion(ctx, models.RegionGujarat); err != nil {
		t.Fatalf("FetchRegion(gujarat) unexpected error: %v", err)
	}
	if inner.fetchCount(models.RegionGujarat) != before {
		t.Error("gujarat should have been served from the snapshot")
	}

	// The failed region falls through to the inner provider.
	if _, err := cached.FetchRegion(ctx, models.RegionKarnataka); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("FetchRegion(karnataka) error = %v, want ErrDataUnavailable", err)
	}
}

func TestCachedProvider_RefreshSwapsWholeSnapshot(t *testing.T) {
	inner := newFakeProvider()
	inner.datasets[models.RegionGujarat] = gujaratDataset()

	cached := NewCachedProvider(inner, testLogger())
	ctx := context.Background()

	if err := cached.Refresh(ctx, []models.Region{models.RegionGujarat}); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	// Second refresh drops gujarat from the requested set: the old entry must
	// not linger in the new snapshot.
	if err := cached.Refresh(ctx, []models.Region{models.RegionRajasthan}); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("Refresh() error = %v, want ErrDataUnavailable", err)
	}

	before := inner.fetchCount(models.RegionGujarat)
	if _, err := cached.FetchRegion(ctx, models.RegionGujarat); err != nil {
		t.Fatalf("FetchRegion() error: %v", err)
	}
	if inner.fetchCount(models.RegionGujarat) != before+1 {
		t.Error("gujarat should have fallen through to the inner provider after the swap")
	}
}
