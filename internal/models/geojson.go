package models

// GeoJSON response types for the optimize endpoints. Coordinates follow the
// GeoJSON axis order: [longitude, latitude].

// PointGeometry is a GeoJSON point.
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// FeatureProperties carries the per-site results attached to each feature.
type FeatureProperties struct {
	SiteName                  string  `json:"site_name"`
	Region                    string  `json:"region"`
	Rank                      int     `json:"rank"`
	LCOH                      float64 `json:"lcoh"`
	ProductionCost            float64 `json:"production_cost"`
	TransportCost             float64 `json:"transport_cost"`
	RenewableScore            float64 `json:"renewable_score"`
	InfrastructureProximityKm float64 `json:"infrastructure_proximity_km"`
	NearestInfrastructure     string  `json:"nearest_infrastructure,omitempty"`
	AnnualProductionTonnes    float64 `json:"annual_production_tonnes"`
}

// Feature is a single ranked candidate site as a GeoJSON feature.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   PointGeometry     `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// RunMetadata describes how a result set was produced.
type RunMetadata struct {
	OptimizationCriteria OptimizationRequest `json:"optimization_criteria"`
	Algorithm            string              `json:"algorithm"`
	RegionFocus          string              `json:"region_focus"`
	TotalSitesFound      int                 `json:"total_sites_found"`
	SkippedRecords       int                 `json:"skipped_records"`
	DataSources          []string            `json:"data_sources"`
	DegradedMode         bool                `json:"degraded_mode"`
}

// FeatureCollection is the complete optimize response.
type FeatureCollection struct {
	Type     string      `json:"type"`
	Features []Feature   `json:"features"`
	Metadata RunMetadata `json:"metadata"`
}
