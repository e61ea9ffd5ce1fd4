package optimizer

import (
	"math"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
)

// earthRadiusKm is the spherical Earth approximation used for all distances.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance in kilometers
// between two latitude/longitude points. Symmetric; zero for identical points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NearestInfrastructure finds the closest infrastructure record to a point.
// Returns ok=false when there are no infrastructure records to measure against.
func NearestInfrastructure(lat, lon float64, infra []models.InfrastructureRecord) (nearestKm float64, name string, ok bool) {
	nearestKm = math.Inf(1)
	for _, f := range infra {
		d := DistanceKm(lat, lon, f.Latitude, f.Longitude)
		if d < nearestKm {
			nearestKm = d
			name = f.FacilityName
			ok = true
		}
	}
	if !ok {
		return 0, "", false
	}
	return nearestKm, name, true
}
