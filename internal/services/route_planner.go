package services

import (
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"math"
)

// Limits a single route must respect.
type RouteLimits struct {
	MaxDistanceMiles   float64
	MaxDurationMinutes int
	MaxStops           int
	DwellMinutes       int
}

func LimitsFromConfig(cfg config.Planner) RouteLimits {
	return RouteLimits{
		MaxDistanceMiles:   cfg.MaxDistanceMiles,
		MaxDurationMinutes: cfg.MaxRouteDurationMinutes,
		MaxStops:           cfg.MaxDropCount,
		DwellMinutes:       cfg.DwellMinutes,
	}
}

// Plan one delivery route using a greedy nearest-neighbor algorithm.
//
// At each step only jobs whose dropoff window contains the current clock are
// candidates, and the geographically nearest of those is tried. If it breaks
// any limit the route ends there; farther candidates are not considered.
// The pool is not modified.
func BuildRoute(
	pool []domain.Job,
	depot domain.Coordinates,
	start domain.ClockTime,
	limits RouteLimits,
	travel geo.TravelModel,
	mapBaseURL string,
) *domain.RoutePlan {
	taken := make([]bool, len(pool))

	currentLocation := depot
	currentTime := start
	totalDistance := 0.0
	stops := []domain.RouteStop{}

	for len(stops) < len(pool) {
		best := -1
		minDistance := math.Inf(1)

		for i, job := range pool {
			if taken[i] || !job.DropoffWindow.Contains(currentTime) {
				continue
			}
			// Strict comparison: the earliest job in the pool wins ties.
			d := geo.HaversineMiles(currentLocation, job.Dropoff)
			if d < minDistance {
				minDistance = d
				best = i
			}
		}

		if best == -1 {
			break
		}
		job := pool[best]

		travelMinutes := travel.TravelMinutes(minDistance, currentTime)
		arrival := currentTime.AddMinutes(travelMinutes)
		completion := arrival.AddMinutes(limits.DwellMinutes)

		newDistance := totalDistance + minDistance
		if newDistance > limits.MaxDistanceMiles ||
			completion.MinutesSince(start) > limits.MaxDurationMinutes ||
			len(stops) >= limits.MaxStops ||
			!job.DropoffWindow.Contains(arrival) {
			break
		}

		stops = append(stops, domain.RouteStop{
			Job:            job,
			PickupArrival:  start,
			DropoffArrival: arrival,
			Completion:     completion,
		})
		taken[best] = true

		totalDistance = newDistance
		currentTime = completion
		currentLocation = job.Dropoff
	}

	plan := &domain.RoutePlan{
		Stops:         stops,
		Start:         start,
		End:           start,
		DistanceMiles: domain.Round(totalDistance, 2),
	}
	if len(stops) == 0 {
		return plan
	}

	plan.End = currentTime
	plan.DurationMinutes = currentTime.MinutesSince(start)

	points := make([]domain.Coordinates, 0, len(stops)+1)
	points = append(points, depot)
	for _, s := range stops {
		points = append(points, s.Job.Dropoff)
	}
	// Depot plus at least one dropoff always satisfies BuildMapLink.
	plan.MapLink, _ = geo.BuildMapLink(mapBaseURL, points)

	return plan
}
