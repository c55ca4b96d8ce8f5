package services

import (
	"crew-route-service/internal/domain"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func locs(coords ...[2]float64) []domain.Location {
	out := make([]domain.Location, 0, len(coords))
	for i, c := range coords {
		out = append(out, domain.Location{
			ID:        fmt.Sprintf("L%d", i),
			Name:      fmt.Sprintf("Job %d", i),
			Latitude:  c[0],
			Longitude: c[1],
		})
	}
	return out
}

func ids(r *domain.RouteResult) []string {
	return r.StopIDs()
}

func randomLocations(rng *rand.Rand, n int) []domain.Location {
	out := make([]domain.Location, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Location{
			ID:        fmt.Sprintf("R%d", i),
			Latitude:  33.3 + rng.Float64()*0.4,
			Longitude: -112.2 + rng.Float64()*0.4,
			Duration:  rng.Intn(90),
		})
	}
	return out
}

// requireRouteInvariants checks totals and per-point timing against each other.
func requireRouteInvariants(t *testing.T, input []domain.Location, r *domain.RouteResult, speed float64) {
	t.Helper()

	require.Len(t, r.Points, len(input))

	work := 0
	for _, l := range input {
		work += l.Duration
	}

	var dist, travel float64
	for k, p := range r.Points {
		dist += p.DistanceFromPrevious
		travel += p.TravelTimeFromPrevious
		if k == 0 {
			assert.Zero(t, p.DistanceFromPrevious)
			assert.Zero(t, p.TravelTimeFromPrevious)
			assert.True(t, p.ArrivalTime.Equal(p.DepartureTime))
			continue
		}
		assert.InDelta(t, p.DistanceFromPrevious/1000/speed*60, p.TravelTimeFromPrevious, 1e-9)
		assert.False(t, p.ArrivalTime.Before(r.Points[k-1].DepartureTime), "stop %d arrives before previous departs", k)
		assert.Equal(t, time.Duration(p.Duration)*time.Minute, p.DepartureTime.Sub(p.ArrivalTime).Round(time.Second))
	}

	assert.InDelta(t, dist, r.TotalDistance, 1e-6)
	assert.InDelta(t, travel, r.TotalTravelTime, 1e-9)
	assert.Equal(t, r.TotalTravelTime+float64(work), r.TotalDuration)
}
