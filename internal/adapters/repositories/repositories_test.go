package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"delivery-dispatch-service/internal/ingest"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/ports"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var region = geo.Bounds{MinLat: 49.5, MaxLat: 61.0, MinLng: -8.5, MaxLng: 2.0}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	return conn
}

const seedJSON = `[
  {"pickup_lat": "51.5074", "pickup_lng": "-0.1278", "pickup_time_from": "08:00:00", "pickup_time_to": "09:00:00",
   "dropoff_lat": "51.5155", "dropoff_lng": "-0.0922", "dropoff_time_from": "10:00:00", "dropoff_time_to": "14:00:00",
   "pickup_address_line_1": "1 Depot Way", "dropoff_address_line_1": "22 Bishopsgate"},
  {"pickup_lat": "51.5074", "pickup_lng": "-0.1278", "pickup_time_from": "08:00:00", "pickup_time_to": "09:00:00",
   "dropoff_lat": "40.7128", "dropoff_lng": "-74.0060", "dropoff_time_from": "10:00:00", "dropoff_time_to": "14:00:00",
   "pickup_address_line_1": "1 Depot Way", "dropoff_address_line_1": "New York"}
]`

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	assert.NoError(t, InitSchema(conn))
	assert.Error(t, InitSchema(nil))
}

func TestSeedAndLoadJobs(t *testing.T) {
	conn := openTestDB(t)
	seed := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(seed, []byte(seedJSON), 0o644))

	require.NoError(t, SeedFromJSON(conn, db.SQLite, seed))
	// Reseeding replaces rather than duplicates.
	require.NoError(t, SeedFromJSON(conn, db.SQLite, seed))

	repo := NewSQLJobRepository(conn, db.SQLite, region)
	jobs, failures, err := repo.LoadJobs(context.Background())
	require.NoError(t, err)

	require.Len(t, jobs, 1)
	assert.Equal(t, "22 Bishopsgate", jobs[0].DropoffAddress)
	assert.Equal(t, domain.Coordinates{Lat: 51.5155, Lng: -0.0922}, jobs[0].Dropoff)

	require.Len(t, failures, 1)
	assert.Equal(t, 2, failures[0].Row)
	assert.Equal(t, "New York", failures[0].DropoffAddress)
	assert.Contains(t, failures[0].Reason, "dropoff")
}

func TestSeedFromJSONErrors(t *testing.T) {
	conn := openTestDB(t)

	err := SeedFromJSON(conn, db.SQLite, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not": "an array"}`), 0o644))
	assert.ErrorContains(t, SeedFromJSON(conn, db.SQLite, bad), "parse json")
}

func TestReplaceRecordsThenList(t *testing.T) {
	conn := openTestDB(t)
	repo := NewSQLJobRepository(conn, db.SQLite, region)

	recs := []ingest.RawRecord{{PickupAddress: "a"}, {PickupAddress: "b"}}
	require.NoError(t, repo.ReplaceRecords(recs))

	ids, got, err := repo.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)
	assert.Equal(t, recs, got)
}

func samplePlan(runID string, created time.Time) *domain.Plan {
	start := domain.MustParseClock("10:00:00")
	job := domain.Job{
		Pickup:         domain.Coordinates{Lat: 51.5074, Lng: -0.1278},
		PickupWindow:   domain.TimeWindow{From: domain.MustParseClock("08:00:00"), To: domain.MustParseClock("09:00:00")},
		Dropoff:        domain.Coordinates{Lat: 51.5089, Lng: -0.1278},
		DropoffWindow:  domain.TimeWindow{From: domain.MustParseClock("09:00:00"), To: domain.MustParseClock("17:00:00")},
		PickupAddress:  "1 Depot Way",
		DropoffAddress: "A St",
	}
	second := job
	second.DropoffAddress = "B St"
	second.Dropoff.Lat = 51.5104

	return &domain.Plan{
		RunID:     runID,
		CreatedAt: created,
		Depot:     domain.Coordinates{Lat: 51.5074, Lng: -0.1278},
		Routes: []domain.RoutePlan{{
			Number: 1,
			Stops: []domain.RouteStop{
				{Job: job, PickupArrival: start, DropoffArrival: start.AddMinutes(1), Completion: start.AddMinutes(6)},
				{Job: second, PickupArrival: start, DropoffArrival: start.AddMinutes(7), Completion: start.AddMinutes(12)},
			},
			Start:           start,
			End:             start.AddMinutes(12),
			DistanceMiles:   0.21,
			DurationMinutes: 12,
			MapLink:         "https://www.google.com/maps/dir/51.5074,-0.1278/51.5089,-0.1278/51.5104,-0.1278/",
		}},
		Unassigned: []domain.Job{},
	}
}

func TestPlanRepositoryRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	repo := NewSQLPlanRepository(conn, db.SQLite)
	ctx := context.Background()

	_, err := repo.LatestPlan(ctx)
	require.ErrorIs(t, err, ports.ErrNotFound)

	older := samplePlan("run-1", time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	newer := samplePlan("run-2", time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	newer.Unassigned = []domain.Job{older.Routes[0].Stops[0].Job}

	require.NoError(t, repo.SavePlan(ctx, older))
	require.NoError(t, repo.SavePlan(ctx, newer))

	got, err := repo.LatestPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestPlanRepositoryRejectsDuplicateRun(t *testing.T) {
	conn := openTestDB(t)
	repo := NewSQLPlanRepository(conn, db.SQLite)
	plan := samplePlan("run-1", time.Now().UTC())

	require.NoError(t, repo.SavePlan(context.Background(), plan))
	assert.Error(t, repo.SavePlan(context.Background(), plan))
}
