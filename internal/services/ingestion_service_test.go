package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

// captureRepo records every batch handed to it.
type captureRepo struct {
	renewable      []models.RenewablePotentialRecord
	infrastructure []models.InfrastructureRecord
	transport      []models.TransportationRecord
	batches        int
}

func (r *captureRepo) FetchRegion(ctx context.Context, region models.Region) (*models.ReferenceDataset, error) {
	return nil, nil
}

func (r *captureRepo) HealthCheck(ctx context.Context) error { return nil }

func (r *captureRepo) CreateRenewableRecordsBatch(ctx context.Context, records []models.RenewablePotentialRecord) error {
	r.renewable = append(r.renewable, records...)
	r.batches++
	return nil
}

func (r *captureRepo) CreateInfrastructureRecordsBatch(ctx context.Context, records []models.InfrastructureRecord) error {
	r.infrastructure = append(r.infrastructure, records...)
	r.batches++
	return nil
}

func (r *captureRepo) CreateTransportationRecordsBatch(ctx context.Context, records []models.TransportationRecord) error {
	r.transport = append(r.transport, records...)
	r.batches++
	return nil
}

func newTestIngestionService(t *testing.T, repo *captureRepo) *IngestionService {
	t.Helper()

	logger := logging.NewStructuredLogger("test", "0.0.0", logging.ErrorLevel)
	logger.SetOutput(io.Discard)

	collector := metrics.NewCollectorWith(prometheus.NewRegistry(), "greenh2_test")

	return NewIngestionService(repo, logger, collector)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestIngestionService_IngestDirectory(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "renewable_potential.csv",
		"site_name,state,latitude,longitude,solar_irradiance_kwh_m2_day,wind_speed_ms,land_suitability_score,grid_distance_km\n"+
			"Bhuj_Solar_Park,Gujarat,23.241,69.669,6.2,7.5,0.85,12\n"+
			"Jaisalmer_Wind,Rajasthan,26.915,70.908,5.8,8.9,0.78,8\n")

	writeFile(t, dir, "infrastructure.csv",
		"facility_name,facility_type,state,latitude,longitude,capacity_mw,status\n"+
			"Jamnagar Port,port,Gujarat,22.470,70.057,50000,operational\n")

	writeFile(t, dir, "transportation_network.csv",
		"network_name,network_type,state,latitude,longitude,capacity_tonnes_year,status\n"+
			"NH-27 Corridor,road,Gujarat,22.8,70.8,2500000,operational\n")

	repo := &captureRepo{}
	svc := newTestIngestionService(t, repo)

	result, err := svc.IngestDirectory(context.Background(), dir, 100)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalFiles)
	assert.Equal(t, 4, result.TotalRecords)
	assert.Equal(t, 4, result.SuccessfulRecords)
	assert.Equal(t, 0, result.FailedRecords)
	assert.Empty(t, result.Errors)

	require.Len(t, repo.renewable, 2)
	assert.Equal(t, "Bhuj_Solar_Park", repo.renewable[0].SiteName)
	assert.InDelta(t, 6.2, repo.renewable[0].SolarIrradiance, 1e-9)

	require.Len(t, repo.infrastructure, 1)
	assert.Equal(t, "port", repo.infrastructure[0].FacilityType)

	require.Len(t, repo.transport, 1)
	assert.InDelta(t, 2500000, repo.transport[0].CapacityTonnesYear, 1e-9)
}

func TestIngestionService_SkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "renewable_potential.csv",
		"site_name,state,latitude,longitude,solar_irradiance_kwh_m2_day,wind_speed_ms,land_suitability_score,grid_distance_km\n"+
			"Good_Site,Gujarat,23.241,69.669,6.2,7.5,0.85,12\n"+
			"Bad_Site,Gujarat,not-a-number,69.669,6.2,7.5,0.85,12\n"+
			"Another_Good,Gujarat,22.470,70.057,5.1,6.0,0.80,20\n")

	repo := &captureRepo{}
	svc := newTestIngestionService(t, repo)

	result, err := svc.IngestDirectory(context.Background(), dir, 100)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 2, result.SuccessfulRecords)
	assert.Equal(t, 1, result.FailedRecords)
	require.Len(t, repo.renewable, 2)
}

func TestIngestionService_BatchingFlushes(t *testing.T) {
	dir := t.TempDir()

	rows := "site_name,state,latitude,longitude,solar_irradiance_kwh_m2_day,wind_speed_ms,land_suitability_score,grid_distance_km\n"
	for i := 0; i < 5; i++ {
		rows += "Site,Gujarat,23.0,70.0,6.0,7.0,0.8,10\n"
	}
	writeFile(t, dir, "renewable_potential.csv", rows)

	repo := &captureRepo{}
	svc := newTestIngestionService(t, repo)

	result, err := svc.IngestDirectory(context.Background(), dir, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, result.SuccessfulRecords)
	require.Len(t, repo.renewable, 5)
	// 5 records at batch size 2 need 3 flushes.
	assert.Equal(t, 3, repo.batches)
}

func TestIngestionService_EmptyDirectoryIsAnError(t *testing.T) {
	repo := &captureRepo{}
	svc := newTestIngestionService(t, repo)

	_, err := svc.IngestDirectory(context.Background(), t.TempDir(), 100)
	require.Error(t, err)
}
