package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OmkumarMangukiya/GreenH2/internal/config"
	"github.com/OmkumarMangukiya/GreenH2/internal/handlers"
	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/internal/optimizer"
	"github.com/OmkumarMangukiya/GreenH2/internal/repository"
	"github.com/OmkumarMangukiya/GreenH2/internal/services"
	"github.com/OmkumarMangukiya/GreenH2/pkg/database"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("greenh2-api", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[STARTUP] Starting GreenH2 site optimization server", logging.Fields{
		"version":     "1.0.0",
		"server_host": cfg.Server.Host,
		"server_port": cfg.Server.Port,
		"db_host":     cfg.Database.Host,
		"db_name":     cfg.Database.Database,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("greenh2")

	// Initialize database. A failed connection is not fatal: the optimizer
	// serves every request from the fallback simulator until the reference
	// store comes back.
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	var provider repository.ReferenceDataProvider

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		logger.Warn(ctx, "[STARTUP_DEGRADED] Reference database unavailable, serving from fallback simulator", logging.Fields{
			"error": err.Error(),
		})
	} else {
		defer db.Close()

		repo := repository.NewReferenceRepository(db, logger, metricsCollector)
		cached := repository.NewCachedProvider(repo, logger)

		regions := models.SupportedRegions()
		if err := cached.Refresh(ctx, regions); err != nil {
			logger.Warn(ctx, "[STARTUP_CACHE] Initial snapshot refresh incomplete", logging.Fields{
				"error": err.Error(),
			})
		}
		cached.StartRefreshLoop(ctx, cfg.Optimizer.CacheRefreshInterval, regions)

		provider = cached
	}

	// Initialize optimization engine
	params := optimizer.DefaultParams()
	params.FetchTimeout = cfg.Optimizer.FetchTimeout
	params.GridThresholdKm = cfg.Optimizer.GridProximityThresholdKm

	engine := optimizer.NewEngine(provider, params, logger, metricsCollector)

	// Initialize services
	optimizationService := services.NewOptimizationService(engine, provider, logger, metricsCollector)

	// Initialize handlers
	optimizeHandler := handlers.NewOptimizeHandler(optimizationService, logger, metricsCollector)

	// Setup router
	router := mux.NewRouter()
	router.Use(handlers.RequestIDMiddleware)

	// Register routes
	optimizeHandler.RegisterRoutes(router)

	// API documentation
	router.HandleFunc("/api/docs/openapi.json", handlers.OpenAPISpec).Methods("GET")
	router.HandleFunc("/docs", handlers.SwaggerUI).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info(ctx, "[SERVER_START] HTTP server listening", logging.Fields{
			"address": server.Addr,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "[SERVER_ERROR] Server failed", logging.Fields{}, err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "[SHUTDOWN] Shutting down server...", logging.Fields{})

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "[SHUTDOWN_ERROR] Server forced to shutdown", logging.Fields{}, err)
	}

	logger.Info(ctx, "[SHUTDOWN_COMPLETE] Server stopped", logging.Fields{})
}
