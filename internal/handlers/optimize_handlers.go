package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/OmkumarMangukiya/GreenH2/internal/config"
	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/internal/services"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

// SiteOptimizer is the part of the optimization service the handlers need.
type SiteOptimizer interface {
	Optimize(ctx context.Context, req models.OptimizationRequest) (*models.FeatureCollection, error)
	Status(ctx context.Context) *services.EngineStatus
}

// OptimizeHandler handles the site-optimization API endpoints
type OptimizeHandler struct {
	optimizer SiteOptimizer
	logger    *logging.StructuredLogger
	metrics   *metrics.Collector
}

// NewOptimizeHandler creates a new optimization handler
func NewOptimizeHandler(
	optimizer SiteOptimizer,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *OptimizeHandler {
	return &OptimizeHandler{
		optimizer: optimizer,
		logger:    logger,
		metrics:   metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// EnvelopeResponse wraps an optimization result for the legacy endpoint.
type EnvelopeResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Optimize handles POST /optimize, returning the result wrapped in a
// status/message envelope.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runOptimization(w, r, "/optimize")
	if !ok {
		return
	}

	response := EnvelopeResponse{
		Status:  "success",
		Message: "Optimization completed successfully",
		Data:    result,
	}

	h.metrics.RecordAPIRequest("/optimize", "POST", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// OptimizeRaw handles POST /api/optimize, returning the bare GeoJSON
// feature collection.
func (h *OptimizeHandler) OptimizeRaw(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runOptimization(w, r, "/api/optimize")
	if !ok {
		return
	}

	h.metrics.RecordAPIRequest("/api/optimize", "POST", "200")
	h.sendJSON(w, result, http.StatusOK)
}

// runOptimization decodes the request body, runs the optimization, and maps
// errors onto HTTP responses. Returns ok=false when a response was already
// written.
func (h *OptimizeHandler) runOptimization(w http.ResponseWriter, r *http.Request, endpoint string) (*models.FeatureCollection, bool) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	}()

	var req models.OptimizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordAPIError("decode_error", endpoint)
		h.sendError(w, r, "invalid request body, expected JSON optimization criteria", http.StatusBadRequest)
		return nil, false
	}

	result, err := h.optimizer.Optimize(ctx, req)
	if err != nil {
		var criteriaErr *models.CriteriaError
		if errors.As(err, &criteriaErr) {
			h.metrics.RecordAPIError("invalid_criteria", endpoint)
			h.sendError(w, r, criteriaErr.Message, http.StatusBadRequest)
			return nil, false
		}

		h.logger.Error(ctx, "[API_OPTIMIZE_ERROR] Optimization failed", logging.Fields{
			"region": req.Region,
		}, err)
		h.metrics.RecordAPIError("internal_error", endpoint)
		h.sendError(w, r, "optimization failed", http.StatusInternalServerError)
		return nil, false
	}

	return result, true
}

// Status handles GET /optimizer/status
func (h *OptimizeHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/optimizer/status").Observe(duration.Seconds())
	}()

	status := h.optimizer.Status(ctx)

	h.metrics.RecordAPIRequest("/optimizer/status", "GET", "200")
	h.sendJSON(w, status, http.StatusOK)
}

// RegionInfo describes one supported region for map frontends.
type RegionInfo struct {
	Region      string           `json:"region"`
	DisplayName string           `json:"display_name"`
	MapCenter   config.MapCenter `json:"map_center"`
}

// Regions handles GET /regions
func (h *OptimizeHandler) Regions(w http.ResponseWriter, r *http.Request) {
	regions := models.SupportedRegions()
	infos := make([]RegionInfo, 0, len(regions))
	for _, region := range regions {
		center, _ := config.RegionCenter(region)
		infos = append(infos, RegionInfo{
			Region:      string(region),
			DisplayName: region.DisplayName(),
			MapCenter:   center,
		})
	}

	h.metrics.RecordAPIRequest("/regions", "GET", "200")
	h.sendJSON(w, infos, http.StatusOK)
}

// Root handles GET /
func (h *OptimizeHandler) Root(w http.ResponseWriter, r *http.Request) {
	info := map[string]string{
		"status":  "API is running",
		"service": "GreenH2 API",
		"version": "1.0.0",
		"docs":    "/docs",
	}

	h.metrics.RecordAPIRequest("/", "GET", "200")
	h.sendJSON(w, info, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *OptimizeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *OptimizeHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *OptimizeHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all optimization API routes
func (h *OptimizeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/optimize", h.Optimize).Methods("POST")
	router.HandleFunc("/api/optimize", h.OptimizeRaw).Methods("POST")
	router.HandleFunc("/optimizer/status", h.Status).Methods("GET")
	router.HandleFunc("/regions", h.Regions).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/", h.Root).Methods("GET")
}

// RequestIDMiddleware assigns every request an identifier, honoring an
// incoming X-Request-ID header, and echoes it back in the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
