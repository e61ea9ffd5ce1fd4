package optimizer

import "time"

// AlgorithmID identifies the optimizer implementation and version in
// response metadata.
const AlgorithmID = "GreenH2_Site_Optimizer_v1.0.0"

// CostParameters holds every coefficient of the levelized-cost model.
// All values are configuration, not derived from data. Defaults follow the
// GEOH2 methodology headline constants.
type CostParameters struct {
	// CAPEX rates.
	SolarCapexPerKW        float64 // $/kW
	WindCapexPerKW         float64 // $/kW
	ElectrolyzerCapexPerKW float64 // $/kW
	StorageCapexPerKWh     float64 // $/kWh
	GridCapexPerKW         float64 // $/kW
	StorageHours           float64 // hours of storage per kW of plant
	IndirectCostFactor     float64 // engineering/permitting share of direct CAPEX

	// OPEX rates.
	OMFactor        float64 // annual O&M as fraction of CAPEX
	InsuranceRate   float64 // annual insurance as fraction of CAPEX
	AnnualLaborCost float64 // $/year
	WaterCostPerL   float64 // $/L
	WaterLPerKg     float64 // liters of water per kg of hydrogen

	// Financing horizon.
	DiscountRate    float64
	ProjectLifetime int // years

	// Conversion chain.
	SolarCapacityFactor  float64
	WindCapacityFactor   float64
	ElectrolyzerEff      float64
	HydrogenKgPerMWh     float64 // kg H2 per MWh of electricity at 100% efficiency
	ReferenceCapacityMW  float64 // electrolysis plant size all candidates are costed at
	MinCapacityScore     float64 // floor on renewable score when sizing installed capacity
	SolarIrradianceExcel float64 // kWh/m²/day treated as score 1.0
	WindSpeedExcel       float64 // m/s treated as score 1.0

	// Transport cost terms ($/kg).
	BaseTransportCost     float64
	GridDistanceCostPerKm float64
}

// DefaultCostParameters returns the documented GEOH2 defaults.
func DefaultCostParameters() CostParameters {
	return CostParameters{
		SolarCapexPerKW:        1200,
		WindCapexPerKW:         1400,
		ElectrolyzerCapexPerKW: 800,
		StorageCapexPerKWh:     200,
		GridCapexPerKW:         100,
		StorageHours:           2,
		IndirectCostFactor:     0.20,

		OMFactor:        0.025,
		InsuranceRate:   0.01,
		AnnualLaborCost: 500000,
		WaterCostPerL:   0.001,
		WaterLPerKg:     20,

		DiscountRate:    0.08,
		ProjectLifetime: 20,

		SolarCapacityFactor:  0.20,
		WindCapacityFactor:   0.35,
		ElectrolyzerEff:      0.70,
		HydrogenKgPerMWh:     200,
		ReferenceCapacityMW:  50,
		MinCapacityScore:     0.15,
		SolarIrradianceExcel: 7.0,
		WindSpeedExcel:       9.0,

		BaseTransportCost:     0.15,
		GridDistanceCostPerKm: 0.01,
	}
}

// ProximityCurve is the bounded, piecewise-linear cost adjustment applied for
// distance to the nearest infrastructure. Negative values are a bonus (cost
// discount), positive values a penalty. The adjustment is monotonically
// non-decreasing in distance and bounded in [-MaxBonus, MaxPenalty].
type ProximityCurve struct {
	NearKm       float64 // full bonus applies inside this radius
	FarKm        float64 // bonus tapers to zero at this radius
	MaxBonus     float64 // $/kg discount at or inside NearKm
	PenaltyPerKm float64 // $/kg per km beyond FarKm
	MaxPenalty   float64 // $/kg cap on the penalty
}

// DefaultProximityCurve returns the default breakpoints.
func DefaultProximityCurve() ProximityCurve {
	return ProximityCurve{
		NearKm:       10,
		FarKm:        100,
		MaxBonus:     0.50,
		PenaltyPerKm: 0.005,
		MaxPenalty:   0.75,
	}
}

// Adjustment returns the cost adjustment in $/kg for a given distance.
func (c ProximityCurve) Adjustment(distanceKm float64) float64 {
	switch {
	case distanceKm <= c.NearKm:
		return -c.MaxBonus
	case distanceKm < c.FarKm:
		// Bonus tapers linearly to zero between NearKm and FarKm.
		frac := (distanceKm - c.NearKm) / (c.FarKm - c.NearKm)
		return -c.MaxBonus * (1 - frac)
	default:
		penalty := (distanceKm - c.FarKm) * c.PenaltyPerKm
		if penalty > c.MaxPenalty {
			penalty = c.MaxPenalty
		}
		return penalty
	}
}

// SaturationKm returns the distance beyond which the penalty no longer grows.
// Used as the effective distance when a region has no infrastructure records.
func (c ProximityCurve) SaturationKm() float64 {
	if c.PenaltyPerKm <= 0 {
		return c.FarKm
	}
	return c.FarKm + c.MaxPenalty/c.PenaltyPerKm
}

// Params bundles the full optimizer configuration.
type Params struct {
	Cost            CostParameters
	Proximity       ProximityCurve
	FetchTimeout    time.Duration
	GridThresholdKm float64
}

// DefaultParams returns the default optimizer configuration.
func DefaultParams() Params {
	return Params{
		Cost:            DefaultCostParameters(),
		Proximity:       DefaultProximityCurve(),
		FetchTimeout:    5 * time.Second,
		GridThresholdKm: 20,
	}
}
