package geo

import (
	"delivery-dispatch-service/internal/domain"
	"math"
)

// SpeedZones approximates congestion by distance band: short hops crawl
// through the centre, longer legs reach faster roads.
type SpeedZones struct {
	CentralMaxMiles float64
	UrbanMaxMiles   float64
	OuterMaxMiles   float64

	CentralMph      float64
	UrbanMph        float64
	OuterMph        float64
	LongDistanceMph float64
}

// TravelModel turns a leg distance into whole minutes of driving.
type TravelModel struct {
	Zones SpeedZones
	// Hours of the day (0-23) during which speeds are reduced.
	PeakHours map[int]struct{}
	// Multiplier (<1) applied to the zone speed during peak hours.
	PeakFactor float64
}

// BaseSpeed returns the zone speed for a leg of the given length.
func (m TravelModel) BaseSpeed(miles float64) float64 {
	z := m.Zones
	switch {
	case miles <= z.CentralMaxMiles:
		return z.CentralMph
	case miles <= z.UrbanMaxMiles:
		return z.UrbanMph
	case miles <= z.OuterMaxMiles:
		return z.OuterMph
	default:
		return z.LongDistanceMph
	}
}

func (m TravelModel) IsPeak(at domain.ClockTime) bool {
	_, ok := m.PeakHours[at.Hour()]
	return ok
}

// TravelMinutes returns the driving time for a leg departing at the given
// clock. Fractional minutes are truncated, never rounded.
func (m TravelModel) TravelMinutes(miles float64, departAt domain.ClockTime) int {
	speed := m.BaseSpeed(miles)
	if m.IsPeak(departAt) {
		speed *= m.PeakFactor
	}
	return int(math.Floor(miles / speed * 60))
}
