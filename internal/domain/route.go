package domain

import "time"

// Represents a Location once it has been placed into a route.
// Schedule fields are derived from the running clock of the itinerary;
// a RoutePoint is never modified after the route that owns it is built.
type RoutePoint struct {
	Location
	ArrivalTime            time.Time
	DepartureTime          time.Time
	DistanceFromPrevious   float64 // meters
	TravelTimeFromPrevious float64 // minutes
}

// Represents the output of one optimization run.
// The order of Points is the route. TotalDuration is the wall-clock span
// in minutes including work time, TotalTravelTime excludes it.
type RouteResult struct {
	Points          []RoutePoint
	TotalDistance   float64
	TotalDuration   float64
	TotalTravelTime float64
}

// Return the sum of dwell minutes over every stop of the route.
func (r *RouteResult) TotalWorkMinutes() int {
	total := 0
	for _, p := range r.Points {
		total += p.Duration
	}
	return total
}

// Return the IDs of the stops in visiting order.
func (r *RouteResult) StopIDs() []string {
	ids := make([]string, 0, len(r.Points))
	for _, p := range r.Points {
		ids = append(ids, p.ID)
	}
	return ids
}
