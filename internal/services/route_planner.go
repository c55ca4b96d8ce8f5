package services

import (
	"crew-route-service/internal/domain"
	"fmt"
)

// Optimize dispatches to the routing function for the selected algorithm.
func Optimize(algorithm domain.Algorithm, locations []domain.Location, opts RouteOptions) (*domain.RouteResult, error) {
	switch algorithm {
	case domain.AlgorithmNearestNeighbor:
		return OptimizeRouteNearestNeighbor(locations, opts)
	case domain.AlgorithmTwoOpt:
		return OptimizeRoute2Opt(locations, opts)
	default:
		return nil, &domain.ParamError{
			Field:  "algorithm",
			Reason: fmt.Sprintf("unsupported algorithm %q", algorithm),
		}
	}
}
