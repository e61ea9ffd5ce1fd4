package services

import (
	"context"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/internal/optimizer"
	"github.com/OmkumarMangukiya/GreenH2/internal/repository"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

// OptimizationService fronts the optimization engine for the HTTP layer and
// reports engine status.
type OptimizationService struct {
	engine   *optimizer.Engine
	provider repository.ReferenceDataProvider
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// EngineStatus describes the optimizer for the status endpoint.
type EngineStatus struct {
	Status            string   `json:"status"`
	Engine            string   `json:"engine"`
	Version           string   `json:"version"`
	DatabaseConnected bool     `json:"database_connected"`
	Capabilities      []string `json:"capabilities"`
	SupportedRegions  []string `json:"supported_regions"`
}

// NewOptimizationService creates a new optimization service. provider may be
// nil when the service runs without a reference database.
func NewOptimizationService(engine *optimizer.Engine, provider repository.ReferenceDataProvider, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *OptimizationService {
	return &OptimizationService{
		engine:   engine,
		provider: provider,
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// Optimize runs one site-optimization call.
func (s *OptimizationService) Optimize(ctx context.Context, req models.OptimizationRequest) (*models.FeatureCollection, error) {
	return s.engine.Optimize(ctx, req)
}

// Status reports whether the reference data backend is reachable along with
// the engine identity and capability set.
func (s *OptimizationService) Status(ctx context.Context) *EngineStatus {
	connected := false
	if s.provider != nil {
		connected = s.provider.HealthCheck(ctx) == nil
	}

	regions := models.SupportedRegions()
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.DisplayName())
	}

	return &EngineStatus{
		Status:            "operational",
		Engine:            optimizer.AlgorithmID,
		Version:           "1.0.0",
		DatabaseConnected: connected,
		Capabilities: []string{
			"LCOH calculation",
			"Infrastructure proximity analysis",
			"Multi-criteria site ranking",
			"Geospatial analysis",
			"Degraded-mode fallback simulation",
		},
		SupportedRegions: names,
	}
}
