package optimizer

import (
	"context"
	"errors"
	"time"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/internal/repository"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

// Engine runs one site optimization end to end: fetch reference data (or
// fall back to the simulator), score each candidate, filter and rank, and
// assemble the GeoJSON response. Each call is a pure computation over an
// immutable snapshot; the engine holds no per-request state, so concurrent
// calls are safe.
type Engine struct {
	provider repository.ReferenceDataProvider
	sim      *Simulator
	params   Params
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// NewEngine creates an optimization engine. provider may be nil, in which
// case every run is served from the fallback simulator.
func NewEngine(provider repository.ReferenceDataProvider, params Params, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Engine {
	return &Engine{
		provider: provider,
		sim:      NewSimulator(),
		params:   params,
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// Optimize validates the request, runs the pipeline, and returns the ranked
// feature collection. The only errors returned are *models.CriteriaError
// (invalid region or criteria); data-layer failures degrade to the simulator
// and are surfaced via the degraded_mode metadata flag.
func (e *Engine) Optimize(ctx context.Context, req models.OptimizationRequest) (*models.FeatureCollection, error) {
	region, err := req.Validate()
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	defer func() {
		e.metrics.OptimizationDuration.Observe(time.Since(startTime).Seconds())
	}()

	ds, degraded := e.fetchDataset(ctx, region)

	candidates, skipped := e.evaluateCandidates(ctx, ds)

	ranked := Rank(candidates, RankingCriteria{
		MaxCost:              req.MaxCost,
		MinProduction:        req.MinProduction,
		RequireGridProximity: req.ProximityToGrid,
		GridThresholdKm:      e.params.GridThresholdKm,
	})

	mode := "live"
	if degraded {
		mode = "fallback"
	}
	e.metrics.RecordOptimizationRun(mode)
	e.metrics.CandidatesEvaluated.Observe(float64(len(candidates)))

	e.logger.Info(ctx, "[OPTIMIZE_COMPLETE] Site optimization finished", logging.Fields{
		"region":          string(region),
		"candidates":      len(candidates),
		"skipped_records": skipped,
		"ranked_sites":    len(ranked),
		"degraded_mode":   degraded,
		"duration_ms":     time.Since(startTime).Milliseconds(),
	})

	return buildResponse(ranked, req, region, degraded, skipped), nil
}

// fetchDataset loads the reference snapshot for a region, falling back to the
// deterministic simulator when the provider is absent, times out, or reports
// the data unavailable. The fetch is bounded by the configured timeout so a
// slow backend never blocks the caller.
func (e *Engine) fetchDataset(ctx context.Context, region models.Region) (*models.ReferenceDataset, bool) {
	if e.provider == nil {
		e.metrics.FallbackActivationTotal.Inc()
		return e.sim.Dataset(region), true
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.params.FetchTimeout)
	defer cancel()

	ds, err := e.provider.FetchRegion(fetchCtx, region)
	if err == nil {
		return ds, false
	}

	if errors.Is(err, repository.ErrDataUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		e.logger.Warn(ctx, "[OPTIMIZE_FALLBACK] Reference data unavailable, using simulator", logging.Fields{
			"region": string(region),
			"error":  err.Error(),
		})
	} else {
		e.logger.Error(ctx, "[OPTIMIZE_FETCH_ERROR] Unexpected fetch failure, using simulator", logging.Fields{
			"region": string(region),
		}, err)
	}

	e.metrics.FallbackActivationTotal.Inc()
	return e.sim.Dataset(region), true
}

// evaluateCandidates scores every renewable record against the nearest
// infrastructure. Malformed records are skipped and counted; a single bad
// record never fails the batch.
func (e *Engine) evaluateCandidates(ctx context.Context, ds *models.ReferenceDataset) ([]models.CandidateSite, int) {
	model := CostModel{Params: e.params.Cost, Curve: e.params.Proximity}

	candidates := make([]models.CandidateSite, 0, len(ds.Renewable))
	skipped := 0

	for _, rec := range ds.Renewable {
		nearestKm, nearestName, found := NearestInfrastructure(rec.Latitude, rec.Longitude, ds.Infrastructure)
		if !found {
			// No infrastructure in the region: cost as if at the penalty
			// saturation distance.
			nearestKm = e.params.Proximity.SaturationKm()
		}

		site, err := model.Evaluate(rec, nearestKm, nearestName)
		if err != nil {
			skipped++
			e.metrics.CandidatesSkippedTotal.Inc()
			e.logger.Debug(ctx, "[OPTIMIZE_SKIP_RECORD] Candidate skipped", logging.Fields{
				"site":  rec.SiteName,
				"error": err.Error(),
			})
			continue
		}

		candidates = append(candidates, site)
	}

	return candidates, skipped
}
