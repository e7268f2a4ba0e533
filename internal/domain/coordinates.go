package domain

import "math"

// Immutable geographic coordinates in degrees (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates rounded to 6 decimal places, the precision map consumers need.
func (c Coordinates) Rounded() Coordinates {
	return Coordinates{Lat: Round(c.Lat, 6), Lng: Round(c.Lng, 6)}
}

// Round x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
