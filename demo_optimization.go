package main

import (
	"context"
	"fmt"
	"os"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
	"github.com/OmkumarMangukiya/GreenH2/internal/optimizer"
	"github.com/OmkumarMangukiya/GreenH2/pkg/logging"
	"github.com/OmkumarMangukiya/GreenH2/pkg/metrics"
)

// Demonstrates the site optimization pipeline without a database. The engine
// runs entirely on the deterministic fallback simulator.
func main() {
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("GREENH2 - SITE OPTIMIZATION DEMONSTRATION (OFFLINE)")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println()

	logger := logging.NewStructuredLogger("demo", "1.0.0", logging.WarnLevel)
	metricsCollector := metrics.NewCollector("greenh2_demo")
	ctx := context.Background()

	// nil provider: every run is served from the fallback simulator
	engine := optimizer.NewEngine(nil, optimizer.DefaultParams(), logger, metricsCollector)

	requests := []models.OptimizationRequest{
		{Region: "gujarat", MaxCost: 5.0},
		{Region: "rajasthan", MaxCost: 4.0, MinProduction: 1000000},
		{Region: "tamil_nadu", MaxCost: 5.0, ProximityToGrid: true},
		{Region: "india", MaxCost: 3.5},
	}

	for _, req := range requests {
		fmt.Printf("─────────────────────────────────────────────────────────────\n")
		fmt.Printf("Region: %-16s max_cost: $%.2f/kg", req.Region, req.MaxCost)
		if req.MinProduction > 0 {
			fmt.Printf("  min_production: %.0f kg/yr", req.MinProduction)
		}
		if req.ProximityToGrid {
			fmt.Printf("  grid proximity required")
		}
		fmt.Println()
		fmt.Printf("─────────────────────────────────────────────────────────────\n")

		result, err := engine.Optimize(ctx, req)
		if err != nil {
			fmt.Printf("Optimization failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Sites found: %d (skipped: %d, degraded mode: %v)\n\n",
			result.Metadata.TotalSitesFound,
			result.Metadata.SkippedRecords,
			result.Metadata.DegradedMode,
		)

		for i, feature := range result.Features {
			if i >= 5 {
				fmt.Printf("  ... and %d more sites\n", len(result.Features)-5)
				break
			}

			p := feature.Properties
			fmt.Printf("  #%d %-24s LCOH: $%.3f/kg (prod $%.3f + transport $%.3f)\n",
				p.Rank, p.SiteName, p.LCOH, p.ProductionCost, p.TransportCost)
			fmt.Printf("      score: %.3f | nearest: %s (%.1f km) | %.1f kt/yr\n",
				p.RenewableScore, p.NearestInfrastructure,
				p.InfrastructureProximityKm, p.AnnualProductionTonnes/1000)
		}
		fmt.Println()
	}

	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("✅ OPTIMIZATION DEMONSTRATION COMPLETE")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Println("The engine successfully:")
	fmt.Println("  ✓ Synthesized deterministic reference data per region")
	fmt.Println("  ✓ Scored renewable potential (blended solar/wind)")
	fmt.Println("  ✓ Computed LCOH as production + transport cost")
	fmt.Println("  ✓ Ranked sites and emitted GeoJSON feature collections")
	fmt.Println()
	fmt.Println("With a database, this would:")
	fmt.Println("  • Load reference data from PostgreSQL instead of the simulator")
	fmt.Println("  • Serve optimizations via the REST API")
	fmt.Println("  • Refresh a shared snapshot cache in the background")
	fmt.Println()
}
