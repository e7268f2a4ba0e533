package dto

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type WindowResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type JobResponse struct {
	PickupAddress  string              `json:"pickup_address"`
	Pickup         CoordinatesResponse `json:"pickup"`
	PickupWindow   WindowResponse      `json:"pickup_window"`
	DropoffAddress string              `json:"dropoff_address"`
	Dropoff        CoordinatesResponse `json:"dropoff"`
	DropoffWindow  WindowResponse      `json:"dropoff_window"`
}

type RecordFailureResponse struct {
	Row            int    `json:"row"`
	PickupAddress  string `json:"pickup_address"`
	DropoffAddress string `json:"dropoff_address"`
	Reason         string `json:"reason"`
}

type ListJobsResponse struct {
	Jobs     []JobResponse           `json:"jobs"`
	Failures []RecordFailureResponse `json:"failures"`
}
