package services

import (
	"crew-route-service/internal/domain"
	"crew-route-service/internal/geo"
	"math"
	"time"
)

// buildItinerary produces a fresh timed route for the given visiting order.
//
// The first stop departs at startTime; the running clock then advances by its
// dwell time, so travel to the second stop starts after work at the first.
func buildItinerary(
	locations []domain.Location,
	order []int,
	startTime time.Time,
	averageSpeedKmh float64,
) *domain.RouteResult {
	points := make([]domain.RoutePoint, 0, len(order))

	var elapsed, totalDistance, totalTravel float64
	workMinutes := 0

	for k, idx := range order {
		loc := locations[idx]
		point := domain.RoutePoint{Location: loc}

		if k == 0 {
			point.ArrivalTime = startTime
			point.DepartureTime = startTime
			elapsed += float64(loc.Duration)
		} else {
			prev := locations[order[k-1]]
			dist := geo.Between(prev.Coordinates(), loc.Coordinates())
			travel := geo.CalculateTravelTime(dist, averageSpeedKmh)

			elapsed += travel
			point.ArrivalTime = addMinutes(startTime, elapsed)
			elapsed += float64(loc.Duration)
			point.DepartureTime = addMinutes(startTime, elapsed)

			point.DistanceFromPrevious = dist
			point.TravelTimeFromPrevious = travel
			totalDistance += dist
			totalTravel += travel
		}

		workMinutes += loc.Duration
		points = append(points, point)
	}

	return &domain.RouteResult{
		Points:          points,
		TotalDistance:   totalDistance,
		TotalDuration:   totalTravel + float64(workMinutes),
		TotalTravelTime: totalTravel,
	}
}

func addMinutes(t time.Time, minutes float64) time.Time {
	return t.Add(time.Duration(math.Round(minutes * float64(time.Minute))))
}

func emptyRoute() *domain.RouteResult {
	return &domain.RouteResult{Points: []domain.RoutePoint{}}
}
