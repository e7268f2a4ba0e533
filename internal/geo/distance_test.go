package geo

import (
	"delivery-dispatch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineMiles(t *testing.T) {
	london := domain.Coordinates{Lat: 51.5074, Lng: -0.1278}
	birmingham := domain.Coordinates{Lat: 52.4862, Lng: -1.8904}

	d := HaversineMiles(london, birmingham)
	assert.GreaterOrEqual(t, d, 90.0)
	assert.LessOrEqual(t, d, 110.0)

	assert.Equal(t, 0.0, HaversineMiles(london, london))
	assert.InDelta(t, d, HaversineMiles(birmingham, london), 1e-9)
}

func TestHaversineMilesAlongMeridian(t *testing.T) {
	a := domain.Coordinates{Lat: 51.0, Lng: 0}
	b := domain.Coordinates{Lat: 52.0, Lng: 0}

	// one degree of latitude on a 3963.1 mile sphere
	require.InDelta(t, 69.17, HaversineMiles(a, b), 0.01)
}
