package geo

import (
	"delivery-dispatch-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidCoordinateFormat = errors.New("invalid coordinate format")
	ErrOutOfGlobalRange        = errors.New("coordinate out of global range")
	ErrOutOfRegionalBounds     = errors.New("coordinate outside regional bounds")
)

// Bounds is the operating region's bounding box, inclusive on every edge.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// ValidateCoordinates parses a latitude/longitude pair given as numbers or
// text, checks it against the globe and the operating region, and returns it
// rounded to 6 decimal places.
func ValidateCoordinates(lat, lng any, region Bounds) (domain.Coordinates, error) {
	latF, latErr := toFloat(lat)
	lngF, lngErr := toFloat(lng)
	if latErr != nil || lngErr != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: lat=%v, lng=%v", ErrInvalidCoordinateFormat, lat, lng)
	}

	if !(-90 <= latF && latF <= 90) {
		return domain.Coordinates{}, fmt.Errorf("%w: latitude %v must be between -90 and 90 degrees", ErrOutOfGlobalRange, latF)
	}
	if !(-180 <= lngF && lngF <= 180) {
		return domain.Coordinates{}, fmt.Errorf("%w: longitude %v must be between -180 and 180 degrees", ErrOutOfGlobalRange, lngF)
	}

	if !(region.MinLat <= latF && latF <= region.MaxLat) {
		return domain.Coordinates{}, fmt.Errorf("%w: latitude %v", ErrOutOfRegionalBounds, latF)
	}
	if !(region.MinLng <= lngF && lngF <= region.MaxLng) {
		return domain.Coordinates{}, fmt.Errorf("%w: longitude %v", ErrOutOfRegionalBounds, lngF)
	}

	return domain.Coordinates{Lat: latF, Lng: lngF}.Rounded(), nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("unsupported coordinate type %T", v)
	}
}
