package domain

// Represents a single delivery job.
// Jobs are created once from validated input and never mutated. The vehicle
// is assumed to have collected the parcel already, so only the dropoff leg
// is routed; the pickup window is carried for reporting.
type Job struct {
	Pickup         Coordinates `json:"pickup"`
	PickupWindow   TimeWindow  `json:"pickup_window"`
	Dropoff        Coordinates `json:"dropoff"`
	DropoffWindow  TimeWindow  `json:"dropoff_window"`
	PickupAddress  string      `json:"pickup_address"`
	DropoffAddress string      `json:"dropoff_address"`
}

// Key identifies a job by its (pickup, dropoff) address pair.
// Two jobs sharing both addresses are indistinguishable to the planner.
func (j Job) Key() string {
	return j.PickupAddress + "->" + j.DropoffAddress
}

// A record rejected during ingestion, with the row it came from.
type RecordFailure struct {
	Row            int    `json:"row"`
	PickupAddress  string `json:"pickup_address"`
	DropoffAddress string `json:"dropoff_address"`
	Reason         string `json:"reason"`
}
