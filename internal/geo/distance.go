// Package geo holds the geospatial helpers the planner relies on: great-circle
// distance, the speed-zone travel model, coordinate validation and map links.
package geo

import (
	"delivery-dispatch-service/internal/domain"
	"math"
)

// Mean Earth radius in statute miles.
const EarthRadiusMiles = 3963.1

// HaversineMiles returns the great-circle distance between a and b.
func HaversineMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lng1 := a.Lng * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lng2 := b.Lng * math.Pi / 180

	dlat := lat2 - lat1
	dlng := lng2 - lng1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)

	return EarthRadiusMiles * 2 * math.Asin(math.Sqrt(h))
}
