package geo

import (
	"delivery-dispatch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func londonModel() TravelModel {
	return TravelModel{
		Zones: SpeedZones{
			CentralMaxMiles: 1.0,
			UrbanMaxMiles:   3.0,
			OuterMaxMiles:   5.0,
			CentralMph:      4,
			UrbanMph:        8,
			OuterMph:        14,
			LongDistanceMph: 25,
		},
		PeakHours:  map[int]struct{}{8: {}, 9: {}, 17: {}, 18: {}, 19: {}},
		PeakFactor: 0.7,
	}
}

func TestBaseSpeedBands(t *testing.T) {
	m := londonModel()

	tests := []struct {
		miles float64
		want  float64
	}{
		{0.2, 4},
		{1.0, 4},
		{1.01, 8},
		{3.0, 8},
		{4.5, 14},
		{5.0, 14},
		{5.01, 25},
		{40, 25},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, m.BaseSpeed(tt.miles), "miles=%v", tt.miles)
	}
}

func TestTravelMinutesTruncates(t *testing.T) {
	m := londonModel()
	ten := domain.MustParseClock("10:00:00")

	// 0.5mi at 4mph = 7.5 minutes
	assert.Equal(t, 7, m.TravelMinutes(0.5, ten))
	// 2mi at 8mph = 15 minutes exactly
	assert.Equal(t, 15, m.TravelMinutes(2, ten))
	// 10mi at 25mph = 24 minutes
	assert.Equal(t, 24, m.TravelMinutes(10, ten))
	assert.Equal(t, 0, m.TravelMinutes(0, ten))
}

func TestTravelMinutesPeakHours(t *testing.T) {
	m := londonModel()

	// 2mi at 8*0.7 = 5.6mph = 21.43 minutes
	assert.Equal(t, 21, m.TravelMinutes(2, domain.MustParseClock("08:30:00")))
	assert.Equal(t, 21, m.TravelMinutes(2, domain.MustParseClock("19:59:59")))
	assert.Equal(t, 15, m.TravelMinutes(2, domain.MustParseClock("20:00:00")))
	assert.Equal(t, 15, m.TravelMinutes(2, domain.MustParseClock("07:59:59")))

	assert.True(t, m.IsPeak(domain.MustParseClock("17:00:00")))
	assert.False(t, m.IsPeak(domain.MustParseClock("12:00:00")))
}
