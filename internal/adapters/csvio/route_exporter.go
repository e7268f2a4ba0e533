package csvio

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const RoutesFileName = "optimized_routes.csv"

// Output columns, one row per stop.
var RouteColumns = []string{
	"Route Number",
	"Job Number",
	"Pickup Address",
	"Pickup Lat",
	"Pickup Lng",
	"Pickup Arrival Time",
	"Dropoff Address",
	"Dropoff Lat",
	"Dropoff Lng",
	"Drop-off Window Start",
	"Drop-off Window End",
	"Estimated Arrival Window Start",
	"Estimated Arrival Window End",
	"Dropoff Arrival Time",
	"Completion Time",
	"Route Distance (Miles)",
	"Route Duration (Minutes)",
	"Map Link",
}

// Writes routes to <Dir>/optimized_routes.csv, replacing any earlier run.
type RouteExporter struct {
	Dir string
}

func NewRouteExporter(dir string) *RouteExporter {
	return &RouteExporter{Dir: dir}
}

func (e *RouteExporter) Path() string {
	return filepath.Join(e.Dir, RoutesFileName)
}

func (e *RouteExporter) ExportRoutes(ctx context.Context, routes []domain.RoutePlan) (_ string, err error) {
	defer obs.Time(ctx, "csv.ExportRoutes")(&err)

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("export routes: create %q: %w", e.Dir, err)
	}

	path := e.Path()
	tmp, err := os.CreateTemp(e.Dir, RoutesFileName+".*")
	if err != nil {
		return "", fmt.Errorf("export routes: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(RouteColumns); err != nil {
		tmp.Close()
		return "", fmt.Errorf("export routes: write header: %w", err)
	}
	for _, r := range routes {
		for i, s := range r.Stops {
			if err := w.Write(stopRow(r, i, s)); err != nil {
				tmp.Close()
				return "", fmt.Errorf("export routes: route %d stop %d: %w", r.Number, i+1, err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("export routes: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export routes: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("export routes: rename to %q: %w", path, err)
	}
	return path, nil
}

func stopRow(r domain.RoutePlan, i int, s domain.RouteStop) []string {
	window := s.EstimatedArrivalWindow()
	return []string{
		"Route " + strconv.Itoa(r.Number),
		strconv.Itoa(i + 1),
		s.Job.PickupAddress,
		formatFloat(s.Job.Pickup.Lat),
		formatFloat(s.Job.Pickup.Lng),
		s.PickupArrival.String(),
		s.Job.DropoffAddress,
		formatFloat(s.Job.Dropoff.Lat),
		formatFloat(s.Job.Dropoff.Lng),
		s.Job.DropoffWindow.From.String(),
		s.Job.DropoffWindow.To.String(),
		window.From.String(),
		window.To.String(),
		s.DropoffArrival.String(),
		s.Completion.String(),
		formatFloat(r.DistanceMiles),
		strconv.Itoa(r.DurationMinutes),
		r.MapLink,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
