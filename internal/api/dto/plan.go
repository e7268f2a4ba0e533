package dto

import "time"

type OptimizeResponse struct {
	MapLinks []string `json:"map_links"`
}

type PlanStopResponse struct {
	JobNumber                   int         `json:"job_number"`
	Job                         JobResponse `json:"job"`
	PickupArrival               string      `json:"pickup_arrival_time"`
	DropoffArrival              string      `json:"dropoff_arrival_time"`
	CompletionTime              string      `json:"completion_time"`
	EstimatedArrivalWindowStart string      `json:"estimated_arrival_window_start"`
	EstimatedArrivalWindowEnd   string      `json:"estimated_arrival_window_end"`
}

type RouteResponse struct {
	RouteNumber          int                `json:"route_number"`
	StartTime            string             `json:"start_time"`
	EndTime              string             `json:"end_time"`
	TotalDistanceMiles   float64            `json:"total_distance_miles"`
	TotalDurationMinutes int                `json:"total_duration_minutes"`
	MapLink              string             `json:"map_link"`
	Stops                []PlanStopResponse `json:"stops"`
}

type PlanResponse struct {
	RunID      string              `json:"run_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Depot      CoordinatesResponse `json:"depot"`
	Routes     []RouteResponse     `json:"routes"`
	Unassigned []JobResponse       `json:"unassigned"`
}
