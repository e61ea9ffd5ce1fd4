package optimizer

import (
	"hash/fnv"
	"math/rand"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
)

// Simulator generates a synthetic, schema-identical reference dataset for a
// region when the live data source is unavailable. Output is deterministic
// for a given region: site positions come from a curated table and the
// resource attributes from a PRNG seeded by the state name, so repeated runs
// rank identically.
type Simulator struct{}

// NewSimulator creates a fallback simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

type simSite struct {
	name string
	lat  float64
	lon  float64
}

type simFacility struct {
	name       string
	kind       string
	lat        float64
	lon        float64
	capacityMW float64
	status     string
}

type simNetwork struct {
	name     string
	kind     string
	lat      float64
	lon      float64
	capacity float64
}

var simSites = map[models.Region][]simSite{
	models.RegionGujarat: {
		{"Bhuj_Solar_Park", 23.241, 69.669},
		{"Kutch_Wind_Farm", 23.733, 68.867},
		{"Surat_Port_Complex", 21.170, 72.831},
		{"Ahmedabad_Industrial", 23.022, 72.571},
		{"Jamnagar_Refinery", 22.470, 70.057},
		{"Bhavnagar_Coast", 21.761, 72.151},
		{"Rajkot_Industrial", 22.303, 70.802},
		{"Vadodara_Chemical", 22.307, 73.181},
	},
	models.RegionRajasthan: {
		{"Jaisalmer_Wind", 26.915, 70.908},
		{"Bikaner_Solar", 28.022, 73.311},
		{"Jodhpur_Industrial", 26.238, 73.024},
		{"Jaipur_Smart_City", 26.912, 75.787},
		{"Barmer_Renewable", 25.753, 71.393},
	},
	models.RegionMaharashtra: {
		{"Dhule_Solar", 20.902, 74.774},
		{"Pune_Technology", 18.520, 73.856},
		{"Mumbai_Port", 18.922, 72.834},
		{"Nagpur_Industrial", 21.145, 79.088},
		{"Aurangabad_Solar", 19.876, 75.343},
	},
	models.RegionKarnataka: {
		{"Bengaluru_Tech", 12.971, 77.594},
		{"Mangalore_Port", 12.914, 74.856},
		{"Hubli_Industrial", 15.364, 75.124},
		{"Mysore_Heritage", 12.295, 76.639},
		{"Tumkur_Solar", 13.340, 77.101},
	},
	models.RegionTamilNadu: {
		{"Chennai_Port", 13.082, 80.270},
		{"Coimbatore_Industrial", 11.016, 76.955},
		{"Tiruchirappalli_Solar", 10.790, 78.704},
		{"Madurai_Heritage", 9.925, 78.119},
		{"Tuticorin_Port", 8.764, 78.134},
	},
	models.RegionAndhraPradesh: {
		{"Visakhapatnam_Port", 17.686, 83.218},
		{"Vijayawada_Industrial", 16.506, 80.648},
		{"Tirupati_Solar", 13.628, 79.419},
		{"Kakinada_Port", 16.989, 82.247},
		{"Anantapur_Wind", 14.681, 77.600},
	},
}

var simFacilities = map[models.Region][]simFacility{
	models.RegionGujarat: {
		{"Jamnagar Port", "port", 22.470, 70.057, 50000, "operational"},
		{"Ahmedabad Industrial Zone", "industrial_park", 23.022, 72.571, 25000, "operational"},
		{"Kutch Substation", "substation", 23.733, 68.867, 4000, "operational"},
	},
	models.RegionRajasthan: {
		{"Jodhpur Industrial Estate", "industrial_park", 26.238, 73.024, 18000, "operational"},
		{"Jaisalmer Substation", "substation", 26.915, 70.908, 3200, "operational"},
	},
	models.RegionMaharashtra: {
		{"Mumbai Port", "port", 18.922, 72.834, 75000, "operational"},
		{"Pune IT Park", "industrial_park", 18.520, 73.856, 30000, "operational"},
	},
	models.RegionKarnataka: {
		{"Mangalore Port", "port", 12.914, 74.856, 45000, "operational"},
		{"Bengaluru Tech Park", "industrial_park", 12.971, 77.594, 35000, "operational"},
	},
	models.RegionTamilNadu: {
		{"Chennai Port", "port", 13.082, 80.270, 65000, "operational"},
		{"Tuticorin Port", "port", 8.764, 78.134, 40000, "under_construction"},
	},
	models.RegionAndhraPradesh: {
		{"Visakhapatnam Port", "port", 17.686, 83.218, 60000, "operational"},
		{"Vijayawada Substation", "substation", 16.506, 80.648, 5000, "planned"},
	},
}

var simNetworks = map[models.Region][]simNetwork{
	models.RegionGujarat: {
		{"NH-27 Corridor", "road", 22.8, 70.8, 2500000},
		{"Kandla Gas Pipeline", "pipeline", 23.0, 70.2, 1200000},
	},
	models.RegionRajasthan: {
		{"NH-62 Corridor", "road", 26.5, 72.5, 1800000},
		{"Jodhpur Rail Link", "rail", 26.3, 73.0, 900000},
	},
	models.RegionMaharashtra: {
		{"Mumbai-Pune Expressway", "road", 18.9, 73.3, 3000000},
		{"Konkan Rail Line", "rail", 19.2, 73.1, 1500000},
	},
	models.RegionKarnataka: {
		{"NH-48 Corridor", "road", 13.5, 76.5, 2200000},
		{"Mangalore Pipeline", "pipeline", 12.9, 75.0, 800000},
	},
	models.RegionTamilNadu: {
		{"NH-44 Corridor", "road", 11.5, 78.2, 2400000},
		{"Chennai Rail Hub", "rail", 13.0, 80.2, 1600000},
	},
	models.RegionAndhraPradesh: {
		{"NH-16 Corridor", "road", 16.8, 81.5, 2000000},
		{"Kakinada Pipeline", "pipeline", 17.0, 82.2, 700000},
	},
}

// Dataset builds the synthetic reference dataset for a region. For
// RegionIndia the per-state datasets are concatenated in enumeration order,
// so a state's records are identical whether fetched alone or as part of the
// national set.
func (s *Simulator) Dataset(region models.Region) *models.ReferenceDataset {
	ds := &models.ReferenceDataset{Region: region}

	for _, state := range region.States() {
		rng := rand.New(rand.NewSource(regionSeed(state)))

		for _, site := range simSites[state] {
			ds.Renewable = append(ds.Renewable, models.RenewablePotentialRecord{
				SiteName:        site.name,
				State:           state.DisplayName(),
				Latitude:        site.lat,
				Longitude:       site.lon,
				SolarIrradiance: 4.5 + rng.Float64()*2.5,
				WindSpeed:       4.0 + rng.Float64()*5.0,
				LandSuitability: 0.70 + rng.Float64()*0.25,
				GridDistanceKm:  2 + rng.Float64()*38,
			})
		}

		for _, f := range simFacilities[state] {
			ds.Infrastructure = append(ds.Infrastructure, models.InfrastructureRecord{
				FacilityName: f.name,
				FacilityType: f.kind,
				State:        state.DisplayName(),
				Latitude:     f.lat,
				Longitude:    f.lon,
				CapacityMW:   f.capacityMW,
				Status:       f.status,
			})
		}

		for _, n := range simNetworks[state] {
			ds.Transport = append(ds.Transport, models.TransportationRecord{
				NetworkName:        n.name,
				NetworkType:        n.kind,
				State:              state.DisplayName(),
				Latitude:           n.lat,
				Longitude:          n.lon,
				CapacityTonnesYear: n.capacity,
				Status:             "operational",
			})
		}
	}

	return ds
}

func regionSeed(region models.Region) int64 {
	h := fnv.New64a()
	h.Write([]byte(region))
	return int64(h.Sum64())
}
