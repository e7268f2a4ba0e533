package services

import (
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var depot = domain.Coordinates{Lat: 51.5074, Lng: -0.1278}

// Build a job whose dropoff sits dLat degrees north of the depot.
func northJob(name string, dLat float64, from, to string) domain.Job {
	return domain.Job{
		Pickup:         depot,
		PickupWindow:   domain.TimeWindow{From: domain.MustParseClock("08:00:00"), To: domain.MustParseClock("18:00:00")},
		Dropoff:        domain.Coordinates{Lat: depot.Lat + dLat, Lng: depot.Lng},
		DropoffWindow:  domain.TimeWindow{From: domain.MustParseClock(from), To: domain.MustParseClock(to)},
		PickupAddress:  "Depot",
		DropoffAddress: name,
	}
}

func testPlanner() config.Planner {
	cfg := config.DefaultPlanner()
	cfg.Depot = depot
	return cfg
}

func buildRoute(jobs []domain.Job, cfg config.Planner) *domain.RoutePlan {
	return BuildRoute(jobs, cfg.Depot, cfg.StartTime, LimitsFromConfig(cfg), cfg.TravelModel(), cfg.MapBaseURL)
}

func stopNames(r *domain.RoutePlan) []string {
	names := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		names = append(names, s.Job.DropoffAddress)
	}
	return names
}

func TestBuildRouteNearestFirst(t *testing.T) {
	jobs := []domain.Job{
		northJob("far", 0.0045, "09:00:00", "17:00:00"),
		northJob("near", 0.0015, "09:00:00", "17:00:00"),
		northJob("mid", 0.003, "09:00:00", "17:00:00"),
	}

	route := buildRoute(jobs, testPlanner())

	require.Len(t, route.Stops, 3)
	assert.Equal(t, []string{"near", "mid", "far"}, stopNames(route))

	// Each leg is ~0.104 mi at 4 mph: one whole minute, then 5 minutes dwell.
	assert.Equal(t, "10:01:00", route.Stops[0].DropoffArrival.String())
	assert.Equal(t, "10:06:00", route.Stops[0].Completion.String())
	assert.Equal(t, "10:07:00", route.Stops[1].DropoffArrival.String())
	assert.Equal(t, "10:13:00", route.Stops[2].DropoffArrival.String())
	assert.Equal(t, "10:18:00", route.End.String())
	assert.Equal(t, 18, route.DurationMinutes)
	assert.Equal(t, 0.31, route.DistanceMiles)

	for _, s := range route.Stops {
		assert.Equal(t, route.Start, s.PickupArrival)
	}
}

func TestBuildRouteDoesNotModifyPool(t *testing.T) {
	jobs := []domain.Job{
		northJob("b", 0.003, "09:00:00", "17:00:00"),
		northJob("a", 0.0015, "09:00:00", "17:00:00"),
	}
	before := append([]domain.Job(nil), jobs...)

	buildRoute(jobs, testPlanner())

	assert.Equal(t, before, jobs)
}

func TestBuildRouteTieGoesToFirstInPool(t *testing.T) {
	first := northJob("same-spot", 0.0015, "09:00:00", "17:00:00")
	first.PickupAddress = "first"
	second := northJob("same-spot", 0.0015, "09:00:00", "17:00:00")
	second.PickupAddress = "second"

	route := buildRoute([]domain.Job{first, second}, testPlanner())

	require.Len(t, route.Stops, 2)
	assert.Equal(t, "first", route.Stops[0].Job.PickupAddress)
	assert.Equal(t, "second", route.Stops[1].Job.PickupAddress)
}

func TestBuildRouteWindowNotOpenYet(t *testing.T) {
	jobs := []domain.Job{northJob("late", 0.0015, "11:00:00", "12:00:00")}

	route := buildRoute(jobs, testPlanner())

	assert.Empty(t, route.Stops)
	assert.Equal(t, 0, route.DurationMinutes)
	assert.Equal(t, route.Start, route.End)
	assert.Equal(t, "", route.MapLink)
}

func TestBuildRouteStopsAtInfeasibleNearest(t *testing.T) {
	jobs := []domain.Job{
		// 0.5 mi takes 7 minutes, arriving after the window closes.
		northJob("closing", 0.00725, "10:00:00", "10:05:00"),
		northJob("reachable", 0.0145, "10:00:00", "12:00:00"),
	}

	route := buildRoute(jobs, testPlanner())

	assert.Empty(t, route.Stops)
}

func TestBuildRouteLimits(t *testing.T) {
	jobs := []domain.Job{
		northJob("near", 0.0015, "09:00:00", "17:00:00"),
		northJob("mid", 0.003, "09:00:00", "17:00:00"),
		northJob("far", 0.0045, "09:00:00", "17:00:00"),
	}

	tests := []struct {
		name   string
		modify func(*config.Planner)
		want   []string
	}{
		{"stop count", func(c *config.Planner) { c.MaxDropCount = 2 }, []string{"near", "mid"}},
		{"distance", func(c *config.Planner) { c.MaxDistanceMiles = 0.25 }, []string{"near", "mid"}},
		{"duration", func(c *config.Planner) { c.MaxRouteDurationMinutes = 10 }, []string{"near"}},
		{"dwell pushes duration", func(c *config.Planner) {
			c.DwellMinutes = 30
			c.MaxRouteDurationMinutes = 60
		}, []string{"near"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testPlanner()
			tt.modify(&cfg)

			route := buildRoute(jobs, cfg)

			assert.Equal(t, tt.want, stopNames(route))
		})
	}
}

func TestBuildRoutePeakHourSlowsTravel(t *testing.T) {
	cfg := testPlanner()
	cfg.StartTime = domain.MustParseClock("08:00:00")
	jobs := []domain.Job{northJob("near", 0.0015, "07:00:00", "17:00:00")}

	route := buildRoute(jobs, cfg)

	require.Len(t, route.Stops, 1)
	// 0.104 mi at 4 * 0.7 mph is 2.2 minutes.
	assert.Equal(t, "08:02:00", route.Stops[0].DropoffArrival.String())
}

func TestBuildRouteMapLinkRoundTrip(t *testing.T) {
	jobs := []domain.Job{
		northJob("near", 0.0015, "09:00:00", "17:00:00"),
		northJob("mid", 0.003, "09:00:00", "17:00:00"),
	}
	cfg := testPlanner()

	route := buildRoute(jobs, cfg)

	points := []domain.Coordinates{depot}
	for _, s := range route.Stops {
		points = append(points, s.Job.Dropoff)
	}
	link, err := geo.BuildMapLink(cfg.MapBaseURL, points)
	require.NoError(t, err)
	assert.Equal(t, link, route.MapLink)
	assert.Equal(t, "https://www.google.com/maps/dir/51.5074,-0.1278/51.5089,-0.1278/51.5104,-0.1278/", route.MapLink)
}
