package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/internal/repository"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

// IngestionService loads reference CSV data into the reference tables.
// Expected files in the data directory:
//
//	renewable_potential.csv    site_name,state,latitude,longitude,solar_irradiance_kwh_m2_day,wind_speed_ms,land_suitability_score,grid_distance_km
//	infrastructure.csv         facility_name,facility_type,state,latitude,longitude,capacity_mw,status
//	transportation_network.csv network_name,network_type,state,latitude,longitude,capacity_tonnes_year,status
//
// Each file carries a header row. Malformed rows are skipped and counted.
type IngestionService struct {
	repo    repository.ReferenceRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// IngestionResult contains ingestion statistics
type IngestionResult struct {
	TotalFiles        int
	TotalRecords      int
	SuccessfulRecords int
	FailedRecords     int
	Duration          time.Duration
	Errors            []string
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(repo repository.ReferenceRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *IngestionService {
	return &IngestionService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// IngestDirectory ingests every recognized reference CSV file from a directory.
func (s *IngestionService) IngestDirectory(ctx context.Context, dataDir string, batchSize int) (*IngestionResult, error) {
	startTime := time.Now()

	s.logger.Info(ctx, "[INGEST_START] Starting reference data ingestion", logging.Fields{
		"data_dir":   dataDir,
		"batch_size": batchSize,
	})

	result := &IngestionResult{
		Errors: make([]string, 0),
	}

	files := map[string]func(context.Context, string, int, *IngestionResult) error{
		"renewable_potential.csv":    s.ingestRenewable,
		"infrastructure.csv":         s.ingestInfrastructure,
		"transportation_network.csv": s.ingestTransportation,
	}

	found := 0
	for name, ingest := range files {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		found++
		result.TotalFiles++

		if err := ingest(ctx, path, batchSize, result); err != nil {
			errMsg := fmt.Sprintf("failed to ingest %s: %v", path, err)
			result.Errors = append(result.Errors, errMsg)
			s.logger.Error(ctx, "[INGEST_FILE_ERROR] File ingestion failed", logging.Fields{
				"file_path": path,
			}, err)
			s.metrics.RecordIngestionError("file_error")
		}
	}

	if found == 0 {
		return nil, fmt.Errorf("no reference data files found in %s", dataDir)
	}

	result.Duration = time.Since(startTime)
	s.metrics.IngestionDuration.Observe(result.Duration.Seconds())

	s.logger.Info(ctx, "[INGEST_COMPLETE] Reference data ingestion completed", logging.Fields{
		"total_files":        result.TotalFiles,
		"total_records":      result.TotalRecords,
		"successful_records": result.SuccessfulRecords,
		"failed_records":     result.FailedRecords,
		"duration_seconds":   result.Duration.Seconds(),
		"error_count":        len(result.Errors),
	})

	return result, nil
}

func (s *IngestionService) ingestRenewable(ctx context.Context, path string, batchSize int, result *IngestionResult) error {
	batch := make([]models.RenewablePotentialRecord, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.CreateRenewableRecordsBatch(ctx, batch); err != nil {
			return err
		}
		result.SuccessfulRecords += len(batch)
		batch = batch[:0]
		return nil
	}

	err := s.forEachRow(path, 8, func(row []string) {
		result.TotalRecords++
		rec, err := parseRenewableRow(row)
		if err != nil {
			result.FailedRecords++
			s.metrics.RecordIngestionError("parse_error")
			return
		}
		batch = append(batch, rec)
	}, func() error {
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	return flush()
}

func (s *IngestionService) ingestInfrastructure(ctx context.Context, path string, batchSize int, result *IngestionResult) error {
	batch := make([]models.InfrastructureRecord, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.CreateInfrastructureRecordsBatch(ctx, batch); err != nil {
			return err
		}
		result.SuccessfulRecords += len(batch)
		batch = batch[:0]
		return nil
	}

	err := s.forEachRow(path, 7, func(row []string) {
		result.TotalRecords++
		rec, err := parseInfrastructureRow(row)
		if err != nil {
			result.FailedRecords++
			s.metrics.RecordIngestionError("parse_error")
			return
		}
		batch = append(batch, rec)
	}, func() error {
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	return flush()
}

func (s *IngestionService) ingestTransportation(ctx context.Context, path string, batchSize int, result *IngestionResult) error {
	batch := make([]models.TransportationRecord, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.CreateTransportationRecordsBatch(ctx, batch); err != nil {
			return err
		}
		result.SuccessfulRecords += len(batch)
		batch = batch[:0]
		return nil
	}

	err := s.forEachRow(path, 7, func(row []string) {
		result.TotalRecords++
		rec, err := parseTransportationRow(row)
		if err != nil {
			result.FailedRecords++
			s.metrics.RecordIngestionError("parse_error")
			return
		}
		batch = append(batch, rec)
	}, func() error {
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	return flush()
}

// forEachRow streams CSV rows (skipping the header) to onRow, calling
// afterRow between rows so the caller can flush full batches.
func (s *IngestionService) forEachRow(path string, fields int, onRow func([]string), afterRow func() error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = fields
	reader.TrimLeadingSpace = true

	// Header row.
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Structurally broken row: count it and keep reading.
			onRow(nil)
			continue
		}
		onRow(row)

		if err := afterRow(); err != nil {
			return err
		}
	}

	return nil
}

func parseRenewableRow(row []string) (models.RenewablePotentialRecord, error) {
	if len(row) != 8 {
		return models.RenewablePotentialRecord{}, fmt.Errorf("expected 8 fields, got %d", len(row))
	}

	values := make([]float64, 6)
	for i, raw := range row[2:] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.RenewablePotentialRecord{}, fmt.Errorf("invalid numeric field %q: %w", raw, err)
		}
		values[i] = v
	}

	return models.RenewablePotentialRecord{
		SiteName:        row[0],
		State:           row[1],
		Latitude:        values[0],
		Longitude:       values[1],
		SolarIrradiance: values[2],
		WindSpeed:       values[3],
		LandSuitability: values[4],
		GridDistanceKm:  values[5],
	}, nil
}

func parseInfrastructureRow(row []string) (models.InfrastructureRecord, error) {
	if len(row) != 7 {
		return models.InfrastructureRecord{}, fmt.Errorf("expected 7 fields, got %d", len(row))
	}

	lat, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return models.InfrastructureRecord{}, fmt.Errorf("invalid latitude %q: %w", row[3], err)
	}
	lon, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return models.InfrastructureRecord{}, fmt.Errorf("invalid longitude %q: %w", row[4], err)
	}
	capacity, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return models.InfrastructureRecord{}, fmt.Errorf("invalid capacity %q: %w", row[5], err)
	}

	return models.InfrastructureRecord{
		FacilityName: row[0],
		FacilityType: row[1],
		State:        row[2],
		Latitude:     lat,
		Longitude:    lon,
		CapacityMW:   capacity,
		Status:       row[6],
	}, nil
}

func parseTransportationRow(row []string) (models.TransportationRecord, error) {
	if len(row) != 7 {
		return models.TransportationRecord{}, fmt.Errorf("expected 7 fields, got %d", len(row))
	}

	lat, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return models.TransportationRecord{}, fmt.Errorf("invalid latitude %q: %w", row[3], err)
	}
	lon, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return models.TransportationRecord{}, fmt.Errorf("invalid longitude %q: %w", row[4], err)
	}
	capacity, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return models.TransportationRecord{}, fmt.Errorf("invalid capacity %q: %w", row[5], err)
	}

	return models.TransportationRecord{
		NetworkName:        row[0],
		NetworkType:        row[1],
		State:              row[2],
		Latitude:           lat,
		Longitude:          lon,
		CapacityTonnesYear: capacity,
		Status:             row[6],
	}, nil
}
