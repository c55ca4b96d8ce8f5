package services

import (
	"crew-route-service/internal/domain"
	"crew-route-service/internal/geo"
	"fmt"
	"math"
	"slices"
)

// OptimizeRouteNearestNeighbor plans a route with the greedy nearest-neighbor heuristic.
//
// From the start location it always steps to the closest unvisited location by
// great-circle distance. It does not attempt global optimization; the result is
// deterministic for a given input order. A forced end location (EndIndex != StartIndex)
// is held out of the greedy pool and visited exactly once, last.
func OptimizeRouteNearestNeighbor(locations []domain.Location, opts RouteOptions) (*domain.RouteResult, error) {
	if len(locations) == 0 {
		return emptyRoute(), nil
	}

	order, err := nearestNeighborOrder(locations, opts)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbor route: %w", err)
	}

	return buildItinerary(locations, order, opts.StartTime, opts.AverageSpeedKmh), nil
}

func nearestNeighborOrder(locations []domain.Location, opts RouteOptions) ([]int, error) {
	n := len(locations)
	if n == 1 {
		return []int{0}, nil
	}

	if err := opts.validate(n); err != nil {
		return nil, err
	}

	end, forceEnd := opts.forcedEnd(n)

	remaining := make([]int, 0, n)
	for i := range locations {
		if i == opts.StartIndex || (forceEnd && i == end) {
			continue
		}
		remaining = append(remaining, i)
	}

	order := make([]int, 0, n)
	order = append(order, opts.StartIndex)
	current := opts.StartIndex

	for len(remaining) > 0 {
		best := 0
		minDistance := math.Inf(1)

		from := locations[current].Coordinates()
		for k, idx := range remaining {
			d := geo.Between(from, locations[idx].Coordinates())
			// Strict comparison keeps the earliest of equally distant candidates.
			if d < minDistance {
				minDistance = d
				best = k
			}
		}

		current = remaining[best]
		order = append(order, current)
		remaining = slices.Delete(remaining, best, best+1)
	}

	if forceEnd {
		order = append(order, end)
	}

	return order, nil
}
