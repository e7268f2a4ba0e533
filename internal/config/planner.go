package config

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Planner is the immutable configuration of a planning run. It is built once
// and handed to the planner explicitly.
type Planner struct {
	MaxDistanceMiles        float64
	MaxRouteDurationMinutes int
	MaxDropCount            int
	DwellMinutes            int
	StartTime               domain.ClockTime
	Depot                   domain.Coordinates

	Zones      geo.SpeedZones
	PeakHours  []string
	PeakFactor float64

	Region     geo.Bounds
	MapBaseURL string
}

// DefaultPlanner returns the central-London deployment settings.
func DefaultPlanner() Planner {
	return Planner{
		MaxDistanceMiles:        120,
		MaxRouteDurationMinutes: 480,
		MaxDropCount:            20,
		DwellMinutes:            5,
		StartTime:               domain.MustParseClock("10:00:00"),
		Depot:                   domain.Coordinates{Lat: 51.5074, Lng: -0.1278},
		Zones: geo.SpeedZones{
			CentralMaxMiles: 1.0,
			UrbanMaxMiles:   3.0,
			OuterMaxMiles:   5.0,
			CentralMph:      4,
			UrbanMph:        8,
			OuterMph:        14,
			LongDistanceMph: 25,
		},
		PeakHours:  []string{"08:00:00", "09:00:00", "17:00:00", "18:00:00", "19:00:00"},
		PeakFactor: 0.7,
		Region:     geo.Bounds{MinLat: 49.5, MaxLat: 61.0, MinLng: -8.5, MaxLng: 2.0},
		MapBaseURL: geo.DefaultMapBaseURL,
	}
}

// TravelModel derives the speed model; peak entries are keyed by hour.
func (p Planner) TravelModel() geo.TravelModel {
	hours := make(map[int]struct{}, len(p.PeakHours))
	for _, h := range p.PeakHours {
		c, err := domain.ParseClock(h)
		if err != nil {
			continue
		}
		hours[c.Hour()] = struct{}{}
	}
	return geo.TravelModel{Zones: p.Zones, PeakHours: hours, PeakFactor: p.PeakFactor}
}

// WithDepot returns a copy of p departing from another depot.
func (p Planner) WithDepot(depot domain.Coordinates) Planner {
	p.Depot = depot
	p.PeakHours = append([]string(nil), p.PeakHours...)
	return p
}

func (p Planner) Validate() error {
	var errs []error

	if p.MaxDistanceMiles <= 0 {
		errs = append(errs, errors.New("max_distance_miles must be > 0"))
	}
	if p.MaxRouteDurationMinutes <= 0 {
		errs = append(errs, errors.New("max_route_duration_minutes must be > 0"))
	}
	if p.MaxDropCount <= 0 {
		errs = append(errs, errors.New("max_drop_count must be > 0"))
	}
	if p.DwellMinutes < 0 {
		errs = append(errs, errors.New("estimated_delivery_time must be >= 0"))
	}

	z := p.Zones
	if !(0 < z.CentralMaxMiles && z.CentralMaxMiles <= z.UrbanMaxMiles && z.UrbanMaxMiles <= z.OuterMaxMiles) {
		errs = append(errs, errors.New("distance thresholds must be positive and ascending"))
	}
	if z.CentralMph <= 0 || z.UrbanMph <= 0 || z.OuterMph <= 0 || z.LongDistanceMph <= 0 {
		errs = append(errs, errors.New("zone speeds must be > 0"))
	}
	if !(0 < p.PeakFactor && p.PeakFactor <= 1) {
		errs = append(errs, fmt.Errorf("peak_hour_speed_reduction must be in (0,1], got %v", p.PeakFactor))
	}
	for _, h := range p.PeakHours {
		if _, err := domain.ParseClock(h); err != nil {
			errs = append(errs, fmt.Errorf("peak_hours: %w", err))
		}
	}

	r := p.Region
	if r.MinLat > r.MaxLat || r.MinLng > r.MaxLng {
		errs = append(errs, errors.New("region bounds are inverted"))
	}
	if _, err := geo.ValidateCoordinates(p.Depot.Lat, p.Depot.Lng, p.Region); err != nil {
		errs = append(errs, fmt.Errorf("default_collection_point: %w", err))
	}
	if strings.TrimSpace(p.MapBaseURL) == "" {
		errs = append(errs, errors.New("map_base_url must not be empty"))
	}

	return errors.Join(errs...)
}

// YAML file shape. Every field is optional; absent fields keep their defaults.
type plannerFile struct {
	MaxDistanceMiles        *float64   `yaml:"max_distance_miles"`
	MaxRouteDurationMinutes *int       `yaml:"max_route_duration_minutes"`
	MaxDropCount            *int       `yaml:"max_drop_count"`
	EstimatedDeliveryTime   *int       `yaml:"estimated_delivery_time"`
	DefaultStartTime        *string    `yaml:"default_start_time"`
	DefaultCollectionPoint  []float64  `yaml:"default_collection_point"`
	PeakHours               []string   `yaml:"peak_hours"`
	PeakHourSpeedReduction  *float64   `yaml:"peak_hour_speed_reduction"`
	MapBaseURL              *string    `yaml:"map_base_url"`
	Zones                   *zonesFile `yaml:"speed_zones"`
	Region                  *boundFile `yaml:"region"`
}

type zonesFile struct {
	DistanceThresholdCentral *float64 `yaml:"distance_threshold_central"`
	DistanceThresholdUrban   *float64 `yaml:"distance_threshold_urban"`
	DistanceThresholdOuter   *float64 `yaml:"distance_threshold_outer"`
	SpeedCentral             *float64 `yaml:"speed_central"`
	SpeedUrban               *float64 `yaml:"speed_urban"`
	SpeedOuter               *float64 `yaml:"speed_outer"`
	SpeedLongDistance        *float64 `yaml:"speed_long_distance"`
}

type boundFile struct {
	MinLat *float64 `yaml:"min_lat"`
	MaxLat *float64 `yaml:"max_lat"`
	MinLng *float64 `yaml:"min_lng"`
	MaxLng *float64 `yaml:"max_lng"`
}

// LoadPlanner returns the defaults overridden by the YAML file at path.
// An empty path yields the validated defaults.
func LoadPlanner(path string) (Planner, error) {
	p := DefaultPlanner()
	if strings.TrimSpace(path) == "" {
		return p, p.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Planner{}, fmt.Errorf("load planner config: read %q: %w", path, err)
	}

	p, err = ParsePlanner(data)
	if err != nil {
		return Planner{}, fmt.Errorf("load planner config %q: %w", path, err)
	}
	return p, nil
}

// ParsePlanner applies YAML overrides on top of DefaultPlanner and validates the result.
func ParsePlanner(data []byte) (Planner, error) {
	var f plannerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Planner{}, fmt.Errorf("parse yaml: %w", err)
	}

	p := DefaultPlanner()
	setFloat(&p.MaxDistanceMiles, f.MaxDistanceMiles)
	setInt(&p.MaxRouteDurationMinutes, f.MaxRouteDurationMinutes)
	setInt(&p.MaxDropCount, f.MaxDropCount)
	setInt(&p.DwellMinutes, f.EstimatedDeliveryTime)
	setFloat(&p.PeakFactor, f.PeakHourSpeedReduction)

	if f.DefaultStartTime != nil {
		c, err := domain.ParseClock(*f.DefaultStartTime)
		if err != nil {
			return Planner{}, fmt.Errorf("default_start_time: %w", err)
		}
		p.StartTime = c
	}
	if f.DefaultCollectionPoint != nil {
		if len(f.DefaultCollectionPoint) != 2 {
			return Planner{}, errors.New("default_collection_point must be [lat, lng]")
		}
		p.Depot = domain.Coordinates{Lat: f.DefaultCollectionPoint[0], Lng: f.DefaultCollectionPoint[1]}
	}
	if f.PeakHours != nil {
		p.PeakHours = f.PeakHours
	}
	if f.MapBaseURL != nil {
		p.MapBaseURL = *f.MapBaseURL
	}
	if z := f.Zones; z != nil {
		setFloat(&p.Zones.CentralMaxMiles, z.DistanceThresholdCentral)
		setFloat(&p.Zones.UrbanMaxMiles, z.DistanceThresholdUrban)
		setFloat(&p.Zones.OuterMaxMiles, z.DistanceThresholdOuter)
		setFloat(&p.Zones.CentralMph, z.SpeedCentral)
		setFloat(&p.Zones.UrbanMph, z.SpeedUrban)
		setFloat(&p.Zones.OuterMph, z.SpeedOuter)
		setFloat(&p.Zones.LongDistanceMph, z.SpeedLongDistance)
	}
	if r := f.Region; r != nil {
		setFloat(&p.Region.MinLat, r.MinLat)
		setFloat(&p.Region.MaxLat, r.MaxLat)
		setFloat(&p.Region.MinLng, r.MinLng)
		setFloat(&p.Region.MaxLng, r.MaxLng)
	}

	if err := p.Validate(); err != nil {
		return Planner{}, fmt.Errorf("invalid planner config: %w", err)
	}
	return p, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
