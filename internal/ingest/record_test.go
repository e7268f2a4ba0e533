package ingest

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var region = geo.Bounds{MinLat: 49.5, MaxLat: 61.0, MinLng: -8.5, MaxLng: 2.0}

func validRecord() RawRecord {
	return RawRecord{
		PickupLat:       "51.5074",
		PickupLng:       "-0.1278",
		PickupTimeFrom:  "08:00:00",
		PickupTimeTo:    "09:00:00",
		DropoffLat:      "51.5155",
		DropoffLng:      "-0.0922",
		DropoffTimeFrom: "10:00:00",
		DropoffTimeTo:   "14:00:00",
		PickupAddress:   "1 Depot Way",
		DropoffAddress:  "22 Bishopsgate",
	}
}

func TestParseRecord(t *testing.T) {
	job, err := ParseRecord(validRecord(), region)
	require.NoError(t, err)

	assert.Equal(t, domain.Coordinates{Lat: 51.5155, Lng: -0.0922}, job.Dropoff)
	assert.Equal(t, "10:00:00", job.DropoffWindow.From.String())
	assert.Equal(t, "14:00:00", job.DropoffWindow.To.String())
	assert.Equal(t, "1 Depot Way->22 Bishopsgate", job.Key())
}

func TestParseRecordFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawRecord)
		want   error
	}{
		{"bad pickup lat", func(r *RawRecord) { r.PickupLat = "north" }, geo.ErrInvalidCoordinateFormat},
		{"dropoff out of range", func(r *RawRecord) { r.DropoffLng = "190" }, geo.ErrOutOfGlobalRange},
		{"dropoff abroad", func(r *RawRecord) { r.DropoffLat = "48.85"; r.DropoffLng = "2.35" }, geo.ErrOutOfRegionalBounds},
		{"bad time", func(r *RawRecord) { r.DropoffTimeTo = "2pm" }, domain.ErrInvalidClockTime},
		{"inverted window", func(r *RawRecord) { r.DropoffTimeFrom = "15:00:00" }, ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			_, err := ParseRecord(rec, region)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResultCollectsWithoutAborting(t *testing.T) {
	var res Result

	bad := validRecord()
	bad.PickupLat = "x"
	bad.PickupAddress = ""

	res.Add(2, validRecord(), region)
	res.Add(3, bad, region)
	res.Add(4, validRecord(), region)

	assert.Len(t, res.Jobs, 2)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 3, res.Failures[0].Row)
	assert.Equal(t, "unknown", res.Failures[0].PickupAddress)
	assert.Equal(t, "22 Bishopsgate", res.Failures[0].DropoffAddress)
	assert.Contains(t, res.Failures[0].Reason, "invalid coordinate format")
}

func TestRecordFromMap(t *testing.T) {
	row := map[string]string{
		"pickup_lat":             "51.5",
		"dropoff_address_line_1": "B",
	}
	rec := RecordFromMap(row)
	assert.Equal(t, "51.5", rec.PickupLat)
	assert.Equal(t, "B", rec.DropoffAddress)
	assert.Empty(t, rec.PickupLng)
}
