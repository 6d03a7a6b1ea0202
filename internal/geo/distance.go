// Package geo provides great-circle distance math for venue proximity.
package geo

import (
	"math"

	"github.com/platewatch/platewatch/internal/model"
)

// earthRadiusKm is the mean Earth radius used for haversine distance.
const earthRadiusKm = 6371

// DistanceKm returns the haversine great-circle distance between two
// coordinates in kilometers. All finite lat/lon pairs are valid input;
// range validation belongs to the ingestion boundary.
func DistanceKm(a, b model.Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*math.Pow(math.Sin(dLon/2), 2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
