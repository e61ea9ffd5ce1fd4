package optimizer

import (
	"github.com/OmkumarMangukiya/GreenH2/internal/models"
)

var liveDataSources = []string{
	"Solar irradiance data",
	"Wind speed data",
	"Grid infrastructure",
	"Transportation networks",
	"Industrial demand centers",
}

var fallbackDataSources = []string{
	"Deterministic fallback simulator",
}

// buildResponse assembles the ranked candidates and run metadata into the
// GeoJSON feature collection returned to callers. Cost fields are emitted at
// full precision so lcoh always reconstructs from its components.
func buildResponse(ranked []models.CandidateSite, req models.OptimizationRequest, region models.Region, degraded bool, skipped int) *models.FeatureCollection {
	features := make([]models.Feature, 0, len(ranked))

	for _, site := range ranked {
		features = append(features, models.Feature{
			Type: "Feature",
			Geometry: models.PointGeometry{
				Type: "Point",
				// GeoJSON axis order: [longitude, latitude].
				Coordinates: [2]float64{site.Longitude, site.Latitude},
			},
			Properties: models.FeatureProperties{
				SiteName:                  site.SiteName,
				Region:                    region.DisplayName(),
				Rank:                      site.Rank,
				LCOH:                      site.LCOH,
				ProductionCost:            site.ProductionCost,
				TransportCost:             site.TransportCost,
				RenewableScore:            site.RenewableScore,
				InfrastructureProximityKm: site.InfrastructureProximityKm,
				NearestInfrastructure:     site.NearestInfrastructure,
				AnnualProductionTonnes:    site.AnnualProductionTonnes,
			},
		})
	}

	sources := liveDataSources
	if degraded {
		sources = fallbackDataSources
	}

	return &models.FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
		Metadata: models.RunMetadata{
			OptimizationCriteria: req,
			Algorithm:            AlgorithmID,
			RegionFocus:          region.DisplayName(),
			TotalSitesFound:      len(features),
			SkippedRecords:       skipped,
			DataSources:          sources,
			DegradedMode:         degraded,
		},
	}
}
