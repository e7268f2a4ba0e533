package geo

import (
	"delivery-dispatch-service/internal/domain"
	"errors"
	"strconv"
	"strings"
)

const DefaultMapBaseURL = "https://www.google.com/maps/dir/"

var ErrTooFewPoints = errors.New("a route requires at least 2 points")

// BuildMapLink encodes the waypoints, in order, as a directions URL with one
// "lat,lng/" segment per point.
func BuildMapLink(baseURL string, points []domain.Coordinates) (string, error) {
	if len(points) < 2 {
		return "", ErrTooFewPoints
	}

	var b strings.Builder
	b.WriteString(baseURL)
	for _, p := range points {
		p = p.Rounded()
		b.WriteString(formatDegrees(p.Lat))
		b.WriteByte(',')
		b.WriteString(formatDegrees(p.Lng))
		b.WriteByte('/')
	}

	return b.String(), nil
}

// formatDegrees prints the shortest exact form, keeping a decimal point on
// whole degrees so "51" reads as "51.0".
func formatDegrees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
