// Package geo holds the great-circle distance model used for routing.
// Distances are straight-line over the Earth's surface; there is no road network.
package geo

import (
	"crew-route-service/internal/domain"
	"math"

	"github.com/golang/geo/s2"
)

const (
	EarthRadiusMeters = 6371000.0

	// DefaultAverageSpeedKmh is the assumed crew travel speed in city traffic.
	DefaultAverageSpeedKmh = 30.0
)

// CalculateDistance returns the Haversine distance in meters between two
// coordinate pairs given in decimal degrees. Inputs are not validated;
// NaN propagates to the result.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Between is CalculateDistance for domain coordinates.
func Between(a, b domain.Coordinates) float64 {
	return CalculateDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// CalculateTravelTime converts a distance to minutes at the given average speed.
// The speed must be positive; callers validate it.
func CalculateTravelTime(distanceMeters, averageSpeedKmh float64) float64 {
	return (distanceMeters / 1000) / averageSpeedKmh * 60
}

// ValidCoordinate reports whether lat/lon lie within WGS84 bounds.
func ValidCoordinate(lat, lon float64) bool {
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}
