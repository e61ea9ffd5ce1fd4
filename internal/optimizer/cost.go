package optimizer

import (
	"math"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
)

// CostModel computes the levelized cost of hydrogen for candidate sites.
//
// LCOH = (CAPEX + Σ OPEX/(1+r)^t) / (Σ Production_t/(1+r)^t), t = 1..T,
// with constant annual production over the horizon. The result is split into
// a production term (levelized plant cost) and an additive transport term
// (grid distance plus the infrastructure proximity adjustment) so that
// lcoh == production_cost + transport_cost exactly.
type CostModel struct {
	Params CostParameters
	Curve  ProximityCurve
}

// RenewableScore returns the normalized solar and wind scores and the blended
// renewable score 0.7*solar + 0.3*wind. Returns a *models.RecordError when
// the record carries no usable resource data.
func (m CostModel) RenewableScore(rec models.RenewablePotentialRecord) (solarScore, windScore, blended float64, err error) {
	if math.IsNaN(rec.SolarIrradiance) || math.IsNaN(rec.WindSpeed) {
		return 0, 0, 0, &models.RecordError{SiteName: rec.SiteName, Reason: "resource value is NaN"}
	}
	if rec.SolarIrradiance < 0 || rec.WindSpeed < 0 {
		return 0, 0, 0, &models.RecordError{SiteName: rec.SiteName, Reason: "negative resource value"}
	}
	if rec.SolarIrradiance == 0 && rec.WindSpeed == 0 {
		return 0, 0, 0, &models.RecordError{SiteName: rec.SiteName, Reason: "no usable solar or wind resource"}
	}

	solarScore = math.Min(rec.SolarIrradiance/m.Params.SolarIrradianceExcel, 1.0)
	windScore = math.Min(rec.WindSpeed/m.Params.WindSpeedExcel, 1.0)
	blended = 0.7*solarScore + 0.3*windScore
	return solarScore, windScore, blended, nil
}

// Evaluate builds a scored CandidateSite from a renewable record and its
// nearest-infrastructure distance. Returns a *models.RecordError for records
// the model cannot cost; the caller skips those and continues the batch.
func (m CostModel) Evaluate(rec models.RenewablePotentialRecord, nearestKm float64, nearestName string) (models.CandidateSite, error) {
	if math.Abs(rec.Latitude) > 90 || math.Abs(rec.Longitude) > 180 {
		return models.CandidateSite{}, &models.RecordError{SiteName: rec.SiteName, Reason: "coordinates out of range"}
	}
	if rec.GridDistanceKm < 0 {
		return models.CandidateSite{}, &models.RecordError{SiteName: rec.SiteName, Reason: "negative grid distance"}
	}

	solarScore, windScore, score, err := m.RenewableScore(rec)
	if err != nil {
		return models.CandidateSite{}, err
	}

	p := m.Params
	solarFrac := solarScore / (solarScore + windScore)

	// Constant annual output of the reference plant at this site's blended
	// capacity factor.
	capacityFactor := solarFrac*p.SolarCapacityFactor + (1-solarFrac)*p.WindCapacityFactor
	annualMWh := p.ReferenceCapacityMW * 8760 * capacityFactor
	annualKg := annualMWh * p.HydrogenKgPerMWh * p.ElectrolyzerEff

	// A better renewable score means less installed renewable capacity is
	// needed to feed the same electrolyzer.
	sizingScore := math.Max(score, p.MinCapacityScore)
	installedKW := p.ReferenceCapacityMW * 1000 / sizingScore

	renewableCapex := installedKW * (solarFrac*p.SolarCapexPerKW + (1-solarFrac)*p.WindCapexPerKW)
	plantKW := p.ReferenceCapacityMW * 1000
	plantCapex := plantKW * (p.ElectrolyzerCapexPerKW + p.StorageHours*p.StorageCapexPerKWh + p.GridCapexPerKW)

	landSuitability := clamp01(rec.LandSuitability)
	capex := (renewableCapex + plantCapex) * (1 + p.IndirectCostFactor) * (2 - landSuitability)

	opex := capex*(p.OMFactor+p.InsuranceRate) +
		p.AnnualLaborCost +
		annualKg*p.WaterLPerKg*p.WaterCostPerL

	af := annuityFactor(p.DiscountRate, p.ProjectLifetime)
	productionCost := (capex + opex*af) / (annualKg * af)

	transportCost := p.BaseTransportCost +
		rec.GridDistanceKm*p.GridDistanceCostPerKm +
		m.Curve.Adjustment(nearestKm)
	if transportCost < 0 {
		transportCost = 0
	}

	return models.CandidateSite{
		SiteName:                  rec.SiteName,
		State:                     rec.State,
		Latitude:                  rec.Latitude,
		Longitude:                 rec.Longitude,
		RenewableScore:            score,
		GridDistanceKm:            rec.GridDistanceKm,
		InfrastructureProximityKm: nearestKm,
		NearestInfrastructure:     nearestName,
		ProductionCost:            productionCost,
		TransportCost:             transportCost,
		LCOH:                      productionCost + transportCost,
		AnnualProductionTonnes:    annualKg / 1000,
	}, nil
}

// annuityFactor is Σ_{t=1..T} 1/(1+r)^t.
func annuityFactor(rate float64, years int) float64 {
	sum := 0.0
	for t := 1; t <= years; t++ {
		sum += 1 / math.Pow(1+rate, float64(t))
	}
	return sum
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
