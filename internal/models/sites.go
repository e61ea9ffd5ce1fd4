package models

import (
	"fmt"
	"strings"
)

// Region enumerates the supported optimization regions. The special value
// RegionIndia selects the union of all state datasets.
type Region string

const (
	RegionGujarat       Region = "gujarat"
	RegionRajasthan     Region = "rajasthan"
	RegionMaharashtra   Region = "maharashtra"
	RegionKarnataka     Region = "karnataka"
	RegionTamilNadu     Region = "tamil_nadu"
	RegionAndhraPradesh Region = "andhra_pradesh"
	RegionIndia         Region = "india"
)

// SupportedRegions lists every region accepted by ParseRegion, in display order.
func SupportedRegions() []Region {
	return []Region{
		RegionGujarat,
		RegionRajasthan,
		RegionMaharashtra,
		RegionKarnataka,
		RegionTamilNadu,
		RegionAndhraPradesh,
		RegionIndia,
	}
}

// States returns the state regions covered by r. For a single state that is
// the region itself; for RegionIndia it is every state region.
func (r Region) States() []Region {
	if r != RegionIndia {
		return []Region{r}
	}
	states := make([]Region, 0, 6)
	for _, s := range SupportedRegions() {
		if s != RegionIndia {
			states = append(states, s)
		}
	}
	return states
}

// DisplayName returns the human-readable region name ("tamil_nadu" -> "Tamil Nadu").
func (r Region) DisplayName() string {
	parts := strings.Split(string(r), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ParseRegion validates a request region string against the supported set.
// Matching is case-insensitive; spaces are treated as underscores.
func ParseRegion(s string) (Region, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for _, r := range SupportedRegions() {
		if Region(normalized) == r {
			return r, nil
		}
	}
	return "", &CriteriaError{
		Field:   "region",
		Value:   s,
		Message: fmt.Sprintf("unsupported region %q", s),
	}
}

// RenewablePotentialRecord is a raw renewable-resource record for one location.
// Loaded from the reference store (or synthesized by the fallback simulator)
// and treated as immutable for the duration of a request.
type RenewablePotentialRecord struct {
	SiteName        string  `json:"site_name" db:"location_name"`
	State           string  `json:"state" db:"state"`
	Latitude        float64 `json:"latitude" db:"latitude"`
	Longitude       float64 `json:"longitude" db:"longitude"`
	SolarIrradiance float64 `json:"solar_irradiance_kwh_m2_day" db:"solar_irradiance_kwh_m2_day"`
	WindSpeed       float64 `json:"wind_speed_ms" db:"wind_speed_ms"`
	LandSuitability float64 `json:"land_suitability_score" db:"land_suitability_score"`
	GridDistanceKm  float64 `json:"grid_distance_km" db:"grid_distance_km"`
}

// InfrastructureRecord describes an existing or planned facility relevant to
// hydrogen offtake and grid connection.
type InfrastructureRecord struct {
	FacilityName string  `json:"facility_name" db:"facility_name"`
	FacilityType string  `json:"facility_type" db:"facility_type"`
	State        string  `json:"state" db:"state"`
	Latitude     float64 `json:"latitude" db:"latitude"`
	Longitude    float64 `json:"longitude" db:"longitude"`
	CapacityMW   float64 `json:"capacity_mw" db:"capacity_mw"`
	Status       string  `json:"status" db:"status"`
}

// TransportationRecord describes a transport network segment near candidate sites.
type TransportationRecord struct {
	NetworkName        string  `json:"network_name" db:"network_name"`
	NetworkType        string  `json:"network_type" db:"network_type"`
	State              string  `json:"state" db:"state"`
	Latitude           float64 `json:"latitude" db:"latitude"`
	Longitude          float64 `json:"longitude" db:"longitude"`
	CapacityTonnesYear float64 `json:"capacity_tonnes_year" db:"capacity_tonnes_year"`
	Status             string  `json:"status" db:"status"`
}

// ReferenceDataset is one immutable snapshot of reference data for a region.
type ReferenceDataset struct {
	Region         Region
	Renewable      []RenewablePotentialRecord
	Infrastructure []InfrastructureRecord
	Transport      []TransportationRecord
}

// OptimizationRequest carries the user criteria for one optimization call.
type OptimizationRequest struct {
	Region          string  `json:"region"`
	MaxCost         float64 `json:"max_cost"`
	MinProduction   float64 `json:"min_production"`
	ProximityToGrid bool    `json:"proximity_to_grid"`
}

// Validate checks the request criteria and resolves the region enum.
// Returns a *CriteriaError for anything the caller must fix.
func (r *OptimizationRequest) Validate() (Region, error) {
	region, err := ParseRegion(r.Region)
	if err != nil {
		return "", err
	}

	if r.MaxCost <= 0 {
		return "", &CriteriaError{
			Field:   "max_cost",
			Value:   fmt.Sprintf("%v", r.MaxCost),
			Message: "max_cost must be greater than zero",
		}
	}

	if r.MinProduction < 0 {
		return "", &CriteriaError{
			Field:   "min_production",
			Value:   fmt.Sprintf("%v", r.MinProduction),
			Message: "min_production must not be negative",
		}
	}

	return region, nil
}

// CandidateSite is a scored candidate produced during one optimization call.
// It joins a renewable record with its nearest infrastructure and carries the
// computed cost breakdown. Never persisted.
type CandidateSite struct {
	SiteName                  string
	State                     string
	Latitude                  float64
	Longitude                 float64
	RenewableScore            float64
	GridDistanceKm            float64
	InfrastructureProximityKm float64
	NearestInfrastructure     string
	ProductionCost            float64
	TransportCost             float64
	LCOH                      float64
	AnnualProductionTonnes    float64
	Rank                      int
}

// CriteriaError reports invalid request criteria (bad region or bounds).
type CriteriaError struct {
	Field   string
	Value   string
	Message string
}

func (e *CriteriaError) Error() string {
	return e.Message
}

// IsTransient returns false as criteria errors are permanent
func (e *CriteriaError) IsTransient() bool {
	return false
}

// RecordError reports a single malformed reference record. The affected
// candidate is skipped; the batch continues.
type RecordError struct {
	SiteName string
	Reason   string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid record %q: %s", e.SiteName, e.Reason)
}
