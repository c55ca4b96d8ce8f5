package services

import (
	"crew-route-service/internal/domain"
	"crew-route-service/internal/geo"
	"time"
)

const (
	DefaultMaxIterations = 100

	// 2-opt stops searching once a route is this fraction of the
	// nearest-neighbor distance.
	earlyExitRatio = 0.8
)

// RouteOptions parameterize a single optimization run.
// StartTime is always supplied by the caller; routing never reads the wall clock.
type RouteOptions struct {
	StartIndex int
	// EndIndex forces a final stop when it differs from StartIndex and is in range.
	EndIndex        int
	StartTime       time.Time
	AverageSpeedKmh float64
	MaxIterations   int
}

// DefaultRouteOptions starts at the first location, ends wherever the
// route naturally finishes, and assumes city speed.
func DefaultRouteOptions(startTime time.Time) RouteOptions {
	return RouteOptions{
		StartIndex:      0,
		EndIndex:        0,
		StartTime:       startTime,
		AverageSpeedKmh: geo.DefaultAverageSpeedKmh,
		MaxIterations:   DefaultMaxIterations,
	}
}

func (o RouteOptions) validate(n int) error {
	if o.StartIndex < 0 || o.StartIndex >= n {
		return &domain.ParamError{Field: "startLocationIndex", Reason: "out of range"}
	}
	if !(o.AverageSpeedKmh > 0) {
		return &domain.ParamError{Field: "averageSpeed", Reason: "must be positive"}
	}
	return nil
}

func (o RouteOptions) forcedEnd(n int) (int, bool) {
	if o.EndIndex == o.StartIndex || o.EndIndex < 0 || o.EndIndex >= n {
		return 0, false
	}
	return o.EndIndex, true
}

// ValidateIndices checks caller-facing start/end indices against a location count.
// The routing functions ignore an out-of-range end index; the API rejects it.
func ValidateIndices(n, start, end int) error {
	if start < 0 || start >= n {
		return &domain.ParamError{Field: "startLocationIndex", Reason: "out of range"}
	}
	if end < 0 || end >= n {
		return &domain.ParamError{Field: "endLocationIndex", Reason: "out of range"}
	}
	return nil
}
