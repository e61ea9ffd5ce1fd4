package optimizer

import (
	"errors"
	"math"
	"testing"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
)

func testModel() CostModel {
	return CostModel{
		Params: DefaultCostParameters(),
		Curve:  DefaultProximityCurve(),
	}
}

func validRecord() models.RenewablePotentialRecord {
	return models.RenewablePotentialRecord{
		SiteName:        "Bhuj_Solar_Park",
		State:           "Gujarat",
		Latitude:        23.241,
		Longitude:       69.669,
		SolarIrradiance: 6.2,
		WindSpeed:       7.5,
		LandSuitability: 0.85,
		GridDistanceKm:  12,
	}
}

func TestCostModel_RenewableScore(t *testing.T) {
	model := testModel()

	tests := []struct {
		name        string
		solar       float64
		wind        float64
		wantBlended float64
		wantErr     bool
	}{
		{
			name:  "normal resources",
			solar: 3.5, wind: 4.5,
			wantBlended: 0.7*(3.5/7.0) + 0.3*(4.5/9.0),
		},
		{
			name:  "scores cap at one",
			solar: 14.0, wind: 18.0,
			wantBlended: 1.0,
		},
		{
			name:  "solar only",
			solar: 7.0, wind: 0,
			wantBlended: 0.7,
		},
		{
			name:  "wind only",
			solar: 0, wind: 9.0,
			wantBlended: 0.3,
		},
		{
			name:  "both zero",
			solar: 0, wind: 0,
			wantErr: true,
		},
		{
			name:  "negative solar",
			solar: -1, wind: 5,
			wantErr: true,
		},
		{
			name:  "NaN wind",
			solar: 5, wind: math.NaN(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			rec.SolarIrradiance = tt.solar
			rec.WindSpeed = tt.wind

			_, _, blended, err := model.RenewableScore(rec)

			if tt.wantErr {
				if err == nil {
					t.Fatal("RenewableScore() expected error, got nil")
				}
				var recErr *models.RecordError
				if !errors.As(err, &recErr) {
					t.Errorf("RenewableScore() error = %T, want *RecordError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("RenewableScore() unexpected error: %v", err)
			}
			if math.Abs(blended-tt.wantBlended) > 1e-9 {
				t.Errorf("blended score = %v, want %v", blended, tt.wantBlended)
			}
			if blended < 0 || blended > 1 {
				t.Errorf("blended score %v outside [0, 1]", blended)
			}
		})
	}
}

func TestCostModel_Evaluate_CostSplit(t *testing.T) {
	model := testModel()

	site, err := model.Evaluate(validRecord(), 25, "Jamnagar Port")
	if err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}

	// LCOH must always reconstruct exactly from its two components.
	if math.Abs(site.LCOH-(site.ProductionCost+site.TransportCost)) > 1e-6 {
		t.Errorf("LCOH %v != production %v + transport %v",
			site.LCOH, site.ProductionCost, site.TransportCost)
	}

	if site.ProductionCost <= 0 {
		t.Errorf("production cost = %v, want positive", site.ProductionCost)
	}
	if site.TransportCost < 0 {
		t.Errorf("transport cost = %v, want non-negative", site.TransportCost)
	}
	if site.LCOH < 0.5 || site.LCOH > 20 {
		t.Errorf("LCOH = %v $/kg, outside plausible range", site.LCOH)
	}
	if site.AnnualProductionTonnes <= 0 {
		t.Errorf("annual production = %v, want positive", site.AnnualProductionTonnes)
	}
	if site.NearestInfrastructure != "Jamnagar Port" {
		t.Errorf("nearest infrastructure = %q, want %q", site.NearestInfrastructure, "Jamnagar Port")
	}
}

func TestCostModel_Evaluate_BetterResourceIsCheaper(t *testing.T) {
	model := testModel()

	strong := validRecord()
	strong.SolarIrradiance = 6.8
	strong.WindSpeed = 8.5

	weak := validRecord()
	weak.SiteName = "Weak_Site"
	weak.SolarIrradiance = 4.6
	weak.WindSpeed = 4.2

	strongSite, err := model.Evaluate(strong, 25, "Port")
	if err != nil {
		t.Fatalf("Evaluate(strong) error: %v", err)
	}
	weakSite, err := model.Evaluate(weak, 25, "Port")
	if err != nil {
		t.Fatalf("Evaluate(weak) error: %v", err)
	}

	if strongSite.ProductionCost >= weakSite.ProductionCost {
		t.Errorf("stronger resource should cost less: %v >= %v",
			strongSite.ProductionCost, weakSite.ProductionCost)
	}
}

func TestCostModel_Evaluate_InvalidRecords(t *testing.T) {
	model := testModel()

	tests := []struct {
		name   string
		mutate func(*models.RenewablePotentialRecord)
	}{
		{
			name:   "latitude out of range",
			mutate: func(r *models.RenewablePotentialRecord) { r.Latitude = 91 },
		},
		{
			name:   "longitude out of range",
			mutate: func(r *models.RenewablePotentialRecord) { r.Longitude = -181 },
		},
		{
			name:   "negative grid distance",
			mutate: func(r *models.RenewablePotentialRecord) { r.GridDistanceKm = -5 },
		},
		{
			name: "no usable resource",
			mutate: func(r *models.RenewablePotentialRecord) {
				r.SolarIrradiance = 0
				r.WindSpeed = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			_, err := model.Evaluate(rec, 25, "Port")
			if err == nil {
				t.Fatal("Evaluate() expected error, got nil")
			}
			var recErr *models.RecordError
			if !errors.As(err, &recErr) {
				t.Errorf("Evaluate() error = %T, want *RecordError", err)
			}
		})
	}
}

func TestProximityCurve_Adjustment(t *testing.T) {
	curve := DefaultProximityCurve()

	tests := []struct {
		name       string
		distanceKm float64
		want       float64
		tolerance  float64
	}{
		{"inside near radius", 5, -0.50, 1e-9},
		{"at near radius", 10, -0.50, 1e-9},
		{"midway through taper", 55, -0.25, 1e-9},
		{"at far radius", 100, 0, 1e-9},
		{"penalty region", 150, 0.25, 1e-9},
		{"penalty capped", 1000, 0.75, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := curve.Adjustment(tt.distanceKm)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Adjustment(%v) = %v, want %v", tt.distanceKm, got, tt.want)
			}
		})
	}
}

func TestProximityCurve_Monotonic(t *testing.T) {
	curve := DefaultProximityCurve()

	prev := math.Inf(-1)
	for d := 0.0; d <= 400; d += 2.5 {
		adj := curve.Adjustment(d)
		if adj < prev {
			t.Fatalf("Adjustment(%v) = %v decreased below %v", d, adj, prev)
		}
		if adj < -curve.MaxBonus || adj > curve.MaxPenalty {
			t.Fatalf("Adjustment(%v) = %v outside [-%v, %v]", d, adj, curve.MaxBonus, curve.MaxPenalty)
		}
		prev = adj
	}
}

func TestProximityCurve_SaturationKm(t *testing.T) {
	curve := DefaultProximityCurve()

	sat := curve.SaturationKm()
	if sat <= curve.FarKm {
		t.Fatalf("SaturationKm() = %v, want > FarKm %v", sat, curve.FarKm)
	}

	// Beyond saturation the penalty stops growing.
	if curve.Adjustment(sat) != curve.Adjustment(sat+500) {
		t.Errorf("penalty still grows past saturation distance %v", sat)
	}
	if math.Abs(curve.Adjustment(sat)-curve.MaxPenalty) > 1e-9 {
		t.Errorf("Adjustment at saturation = %v, want %v", curve.Adjustment(sat), curve.MaxPenalty)
	}
}

func TestCostModel_TransportCostFloorsAtZero(t *testing.T) {
	model := testModel()

	rec := validRecord()
	rec.GridDistanceKm = 0

	// Full proximity bonus against a near-zero base should clamp at zero
	// rather than going negative.
	site, err := model.Evaluate(rec, 1, "Adjacent Port")
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if site.TransportCost < 0 {
		t.Errorf("transport cost = %v, must never be negative", site.TransportCost)
	}
	if math.Abs(site.LCOH-(site.ProductionCost+site.TransportCost)) > 1e-6 {
		t.Errorf("cost split violated after clamping: %v != %v + %v",
			site.LCOH, site.ProductionCost, site.TransportCost)
	}
}

func TestAnnuityFactor(t *testing.T) {
	// 8% over 20 years is about 9.818.
	af := annuityFactor(0.08, 20)
	if math.Abs(af-9.818) > 0.001 {
		t.Errorf("annuityFactor(0.08, 20) = %v, want ~9.818", af)
	}

	// Zero rate degenerates to the year count.
	if got := annuityFactor(0, 10); math.Abs(got-10) > 1e-9 {
		t.Errorf("annuityFactor(0, 10) = %v, want 10", got)
	}
}
