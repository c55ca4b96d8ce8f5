package geo

import (
	"crew-route-service/internal/domain"
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
)

func TestCalculateDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64 // fraction of want
	}{
		{"one degree on the equator", 0, 0, 0, 1, 111195, 0.01},
		{"new york to los angeles", 40.7128, -74.0060, 34.0522, -118.2437, 3936000, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.want*tt.tolerance)
		})
	}
}

func TestCalculateDistanceSymmetryAndIdentity(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 33.4484, Lon: -112.0740},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: 179.9},
		{Lat: -90, Lon: -180},
	}

	for _, a := range points {
		assert.Equal(t, 0.0, Between(a, a), "identity for %+v", a)
		for _, b := range points {
			assert.Equal(t, Between(a, b), Between(b, a), "symmetry %+v <-> %+v", a, b)
		}
	}
}

func TestCalculateDistanceAntipodal(t *testing.T) {
	got := CalculateDistance(0, 0, 0, 180)
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, math.Pi*EarthRadiusMeters, got, 1)
}

func TestCalculateDistanceNaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(CalculateDistance(math.NaN(), 0, 0, 0)))
}

func TestCalculateDistanceMatchesS2(t *testing.T) {
	a := s2.LatLngFromDegrees(33.4484, -112.0740)
	b := s2.LatLngFromDegrees(33.5722, -111.8881)

	want := a.Distance(b).Radians() * EarthRadiusMeters
	got := CalculateDistance(33.4484, -112.0740, 33.5722, -111.8881)
	assert.InDelta(t, want, got, 0.01)
}

func TestCalculateTravelTime(t *testing.T) {
	assert.Equal(t, 2.0, CalculateTravelTime(1000, DefaultAverageSpeedKmh))
	assert.Equal(t, 60.0, CalculateTravelTime(60000, 60))
	assert.Equal(t, 0.0, CalculateTravelTime(0, DefaultAverageSpeedKmh))
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(0, 0))
	assert.True(t, ValidCoordinate(90, 180))
	assert.True(t, ValidCoordinate(-90, -180))
	assert.False(t, ValidCoordinate(90.1, 0))
	assert.False(t, ValidCoordinate(0, -180.5))
}
