package config

import "github.com/OmkumarMangukiya/GreenH2/internal/models"

// MapCenter is a display center for a region, used by map frontends to frame
// the result set. Not consumed by the optimization core.
type MapCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// regionCenters is keyed by the same Region enum used for request validation
// so a display entry cannot exist for an unsupported region.
var regionCenters = map[models.Region]MapCenter{
	models.RegionGujarat:       {Latitude: 22.259, Longitude: 71.192, Zoom: 7},
	models.RegionRajasthan:     {Latitude: 27.024, Longitude: 74.218, Zoom: 6},
	models.RegionMaharashtra:   {Latitude: 19.752, Longitude: 75.713, Zoom: 6},
	models.RegionKarnataka:     {Latitude: 15.317, Longitude: 75.714, Zoom: 6},
	models.RegionTamilNadu:     {Latitude: 11.127, Longitude: 78.657, Zoom: 7},
	models.RegionAndhraPradesh: {Latitude: 15.913, Longitude: 79.740, Zoom: 6},
	models.RegionIndia:         {Latitude: 22.000, Longitude: 78.000, Zoom: 5},
}

// RegionCenter returns the map display center for a region.
func RegionCenter(region models.Region) (MapCenter, bool) {
	c, ok := regionCenters[region]
	return c, ok
}
