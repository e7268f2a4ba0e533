package domain

import "time"

// Minutes either side of the computed arrival quoted to the customer.
const ArrivalWindowSlackMinutes = 5

// Represents a single committed delivery in a route.
// PickupArrival is the route's start clock: parcels are loaded at the depot
// before departure.
type RouteStop struct {
	Job            Job       `json:"job"`
	PickupArrival  ClockTime `json:"pickup_arrival_time"`
	DropoffArrival ClockTime `json:"dropoff_arrival_time"`
	Completion     ClockTime `json:"completion_time"`
}

// Return the customer-facing arrival window around DropoffArrival.
func (s RouteStop) EstimatedArrivalWindow() TimeWindow {
	return TimeWindow{
		From: s.DropoffArrival.SubMinutes(ArrivalWindowSlackMinutes),
		To:   s.DropoffArrival.AddMinutes(ArrivalWindowSlackMinutes),
	}
}

// Represents the planned delivery route for a single vehicle.
// A RoutePlan is mutated only while it is being constructed; the fleet
// planner only assigns Number afterwards.
type RoutePlan struct {
	Number          int         `json:"route_number"`
	Stops           []RouteStop `json:"stops"`
	Start           ClockTime   `json:"start_time"`
	End             ClockTime   `json:"end_time"`
	DistanceMiles   float64     `json:"total_distance_miles"`
	DurationMinutes int         `json:"total_duration_minutes"`
	MapLink         string      `json:"map_link"`
}

// Return the jobs this route consumed, in commit order.
func (r *RoutePlan) Jobs() []Job {
	jobs := make([]Job, 0, len(r.Stops))
	for _, s := range r.Stops {
		jobs = append(jobs, s.Job)
	}
	return jobs
}

// The outcome of one planning run over a single depot.
type Plan struct {
	RunID      string      `json:"run_id"`
	CreatedAt  time.Time   `json:"created_at"`
	Depot      Coordinates `json:"depot"`
	Routes     []RoutePlan `json:"routes"`
	Unassigned []Job       `json:"unassigned"`
}

// Return each route's map link in route order.
func (p *Plan) MapLinks() []string {
	links := make([]string, 0, len(p.Routes))
	for _, r := range p.Routes {
		links = append(links, r.MapLink)
	}
	return links
}
