package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/pkg/database"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

// ErrDataUnavailable signals that the reference store cannot serve a region:
// the backend is unreachable or the region has no records. The optimizer
// treats this as a cue to switch to the fallback simulator, never as a
// user-facing failure.
var ErrDataUnavailable = errors.New("reference data unavailable")

// ReferenceDataProvider is the read contract the optimization engine consumes.
type ReferenceDataProvider interface {
	FetchRegion(ctx context.Context, region models.Region) (*models.ReferenceDataset, error)
	HealthCheck(ctx context.Context) error
}

// ReferenceRepository provides read and bulk-write access to the reference
// tables. The write side exists for the ingestion tool only; the optimization
// core never writes.
type ReferenceRepository interface {
	ReferenceDataProvider

	CreateRenewableRecordsBatch(ctx context.Context, records []models.RenewablePotentialRecord) error
	CreateInfrastructureRecordsBatch(ctx context.Context, records []models.InfrastructureRecord) error
	CreateTransportationRecordsBatch(ctx context.Context, records []models.TransportationRecord) error
}

// referenceRepository implements ReferenceRepository on PostgreSQL.
type referenceRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewReferenceRepository creates a new reference-data repository.
func NewReferenceRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) ReferenceRepository {
	return &referenceRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// stateFilter returns the value matched against LOWER(state). RegionIndia
// matches every row via the OR clause in the queries.
func stateFilter(region models.Region) string {
	return strings.ToLower(region.DisplayName())
}

// FetchRegion loads one immutable snapshot of reference data for a region.
// Returns ErrDataUnavailable (wrapped) when the store cannot be reached or
// the region has no renewable-potential records.
func (r *referenceRepository) FetchRegion(ctx context.Context, region models.Region) (*models.ReferenceDataset, error) {
	state := stateFilter(region)
	all := region == models.RegionIndia

	ds := &models.ReferenceDataset{Region: region}

	renewableQuery := `
		SELECT location_name, state, latitude, longitude,
		       solar_irradiance_kwh_m2_day, wind_speed_ms,
		       land_suitability_score, grid_distance_km
		FROM renewable_potential
		WHERE LOWER(state) = $1 OR $2
		ORDER BY solar_irradiance_kwh_m2_day DESC, location_name
	`
	if err := r.db.SelectContext(ctx, "fetch_renewable_potential", &ds.Renewable, renewableQuery, state, all); err != nil {
		return nil, fmt.Errorf("%w: renewable potential query failed: %v", ErrDataUnavailable, err)
	}

	if len(ds.Renewable) == 0 {
		return nil, fmt.Errorf("%w: no renewable potential records for region %q", ErrDataUnavailable, region)
	}

	infrastructureQuery := `
		SELECT facility_name, facility_type, state, latitude, longitude,
		       capacity_mw, status
		FROM infrastructure
		WHERE LOWER(state) = $1 OR $2
		ORDER BY facility_name
	`
	if err := r.db.SelectContext(ctx, "fetch_infrastructure", &ds.Infrastructure, infrastructureQuery, state, all); err != nil {
		return nil, fmt.Errorf("%w: infrastructure query failed: %v", ErrDataUnavailable, err)
	}

	transportQuery := `
		SELECT network_name, network_type, state, latitude, longitude,
		       capacity_tonnes_year, status
		FROM transportation_network
		WHERE LOWER(state) = $1 OR $2
		ORDER BY network_name
	`
	if err := r.db.SelectContext(ctx, "fetch_transportation", &ds.Transport, transportQuery, state, all); err != nil {
		return nil, fmt.Errorf("%w: transportation query failed: %v", ErrDataUnavailable, err)
	}

	r.logger.Debug(ctx, "[REPO_FETCH_REGION] Reference snapshot loaded", logging.Fields{
		"region":         string(region),
		"renewable":      len(ds.Renewable),
		"infrastructure": len(ds.Infrastructure),
		"transport":      len(ds.Transport),
	})

	return ds, nil
}

// CreateRenewableRecordsBatch inserts renewable-potential records in a single
// transaction.
func (r *referenceRepository) CreateRenewableRecordsBatch(ctx context.Context, records []models.RenewablePotentialRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO renewable_potential (
			location_name, state, latitude, longitude,
			solar_irradiance_kwh_m2_day, wind_speed_ms,
			land_suitability_score, grid_distance_km
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.SiteName,
			rec.State,
			rec.Latitude,
			rec.Longitude,
			rec.SolarIrradiance,
			rec.WindSpeed,
			rec.LandSuitability,
			rec.GridDistanceKm,
		)
		if err != nil {
			return fmt.Errorf("failed to insert renewable record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.IngestionRecordsTotal.Add(float64(len(records)))
	r.metrics.IngestionBatchSize.Observe(float64(len(records)))

	return nil
}

// CreateInfrastructureRecordsBatch inserts infrastructure records in a single
// transaction.
func (r *referenceRepository) CreateInfrastructureRecordsBatch(ctx context.Context, records []models.InfrastructureRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO infrastructure (
			facility_name, facility_type, state, latitude, longitude,
			capacity_mw, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.FacilityName,
			rec.FacilityType,
			rec.State,
			rec.Latitude,
			rec.Longitude,
			rec.CapacityMW,
			rec.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert infrastructure record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.IngestionRecordsTotal.Add(float64(len(records)))
	r.metrics.IngestionBatchSize.Observe(float64(len(records)))

	return nil
}

// CreateTransportationRecordsBatch inserts transportation records in a single
// transaction.
func (r *referenceRepository) CreateTransportationRecordsBatch(ctx context.Context, records []models.TransportationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transportation_network (
			network_name, network_type, state, latitude, longitude,
			capacity_tonnes_year, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.NetworkName,
			rec.NetworkType,
			rec.State,
			rec.Latitude,
			rec.Longitude,
			rec.CapacityTonnesYear,
			rec.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transportation record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.IngestionRecordsTotal.Add(float64(len(records)))
	r.metrics.IngestionBatchSize.Observe(float64(len(records)))

	return nil
}

// HealthCheck performs a repository health check
func (r *referenceRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
