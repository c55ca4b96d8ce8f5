package services

import (
	"crew-route-service/internal/domain"
	"crew-route-service/internal/geo"
	"fmt"
	"slices"
)

// Reversals must beat the current edges by more than this many meters;
// smaller gains are floating point noise.
const improvementEpsilon = 1e-7

// OptimizeRoute2Opt refines the nearest-neighbor route with 2-opt segment reversals.
//
// Each accepted reversal yields a new order and a fully rebuilt itinerary.
// The first and last stops never move. The best route seen is returned,
// so the result is never longer than the nearest-neighbor route.
func OptimizeRoute2Opt(locations []domain.Location, opts RouteOptions) (*domain.RouteResult, error) {
	if len(locations) == 0 {
		return emptyRoute(), nil
	}

	order, err := nearestNeighborOrder(locations, opts)
	if err != nil {
		return nil, fmt.Errorf("2-opt route: %w", err)
	}

	baseline := buildItinerary(locations, order, opts.StartTime, opts.AverageSpeedKmh)
	if len(locations) <= 3 {
		return baseline, nil
	}

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	threshold := baseline.TotalDistance * earlyExitRatio
	best := baseline
	current := order

	dist := func(a, b int) float64 {
		return geo.Between(locations[a].Coordinates(), locations[b].Coordinates())
	}

	for iter := 0; iter < maxIterations; iter++ {
		improved := false

		for i := 1; i < len(current)-2; i++ {
			for j := i + 2; j < len(current)-1; j++ {
				before := dist(current[i-1], current[i]) + dist(current[j], current[j+1])
				after := dist(current[i-1], current[j]) + dist(current[i], current[j+1])
				if after >= before-improvementEpsilon {
					continue
				}

				current = reverseSegment(current, i, j)
				route := buildItinerary(locations, current, opts.StartTime, opts.AverageSpeedKmh)
				improved = true

				if route.TotalDistance < best.TotalDistance {
					best = route
				}
				if best.TotalDistance < threshold {
					return best, nil
				}
			}
		}

		if !improved {
			break
		}
	}

	return best, nil
}

// reverseSegment returns a copy of order with positions i..j reversed.
func reverseSegment(order []int, i, j int) []int {
	out := slices.Clone(order)
	slices.Reverse(out[i : j+1])
	return out
}
