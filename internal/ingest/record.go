// Package ingest turns raw delivery request records into validated jobs.
// A bad record never aborts the batch; it becomes a RecordFailure instead.
package ingest

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidWindow = errors.New("time window opens after it closes")

// Column names of the request schema, in file order.
var Columns = []string{
	"pickup_lat",
	"pickup_lng",
	"pickup_time_from",
	"pickup_time_to",
	"dropoff_lat",
	"dropoff_lng",
	"dropoff_time_from",
	"dropoff_time_to",
	"pickup_address_line_1",
	"dropoff_address_line_1",
}

// A delivery request exactly as read from its source.
type RawRecord struct {
	PickupLat       string `json:"pickup_lat"`
	PickupLng       string `json:"pickup_lng"`
	PickupTimeFrom  string `json:"pickup_time_from"`
	PickupTimeTo    string `json:"pickup_time_to"`
	DropoffLat      string `json:"dropoff_lat"`
	DropoffLng      string `json:"dropoff_lng"`
	DropoffTimeFrom string `json:"dropoff_time_from"`
	DropoffTimeTo   string `json:"dropoff_time_to"`
	PickupAddress   string `json:"pickup_address_line_1"`
	DropoffAddress  string `json:"dropoff_address_line_1"`
}

// RecordFromMap builds a RawRecord from a header-keyed row.
func RecordFromMap(row map[string]string) RawRecord {
	return RawRecord{
		PickupLat:       row["pickup_lat"],
		PickupLng:       row["pickup_lng"],
		PickupTimeFrom:  row["pickup_time_from"],
		PickupTimeTo:    row["pickup_time_to"],
		DropoffLat:      row["dropoff_lat"],
		DropoffLng:      row["dropoff_lng"],
		DropoffTimeFrom: row["dropoff_time_from"],
		DropoffTimeTo:   row["dropoff_time_to"],
		PickupAddress:   row["pickup_address_line_1"],
		DropoffAddress:  row["dropoff_address_line_1"],
	}
}

// ParseRecord validates a raw record and converts it into a Job.
func ParseRecord(rec RawRecord, region geo.Bounds) (domain.Job, error) {
	pickup, err := geo.ValidateCoordinates(rec.PickupLat, rec.PickupLng, region)
	if err != nil {
		return domain.Job{}, fmt.Errorf("pickup: %w", err)
	}

	dropoff, err := geo.ValidateCoordinates(rec.DropoffLat, rec.DropoffLng, region)
	if err != nil {
		return domain.Job{}, fmt.Errorf("dropoff: %w", err)
	}

	pickupWindow, err := parseWindow(rec.PickupTimeFrom, rec.PickupTimeTo)
	if err != nil {
		return domain.Job{}, fmt.Errorf("pickup window: %w", err)
	}

	dropoffWindow, err := parseWindow(rec.DropoffTimeFrom, rec.DropoffTimeTo)
	if err != nil {
		return domain.Job{}, fmt.Errorf("dropoff window: %w", err)
	}

	return domain.Job{
		Pickup:         pickup,
		PickupWindow:   pickupWindow,
		Dropoff:        dropoff,
		DropoffWindow:  dropoffWindow,
		PickupAddress:  rec.PickupAddress,
		DropoffAddress: rec.DropoffAddress,
	}, nil
}

func parseWindow(from, to string) (domain.TimeWindow, error) {
	f, err := domain.ParseClock(strings.TrimSpace(from))
	if err != nil {
		return domain.TimeWindow{}, err
	}
	t, err := domain.ParseClock(strings.TrimSpace(to))
	if err != nil {
		return domain.TimeWindow{}, err
	}
	if f > t {
		return domain.TimeWindow{}, fmt.Errorf("%w: %s > %s", ErrInvalidWindow, f, t)
	}
	return domain.TimeWindow{From: f, To: t}, nil
}
