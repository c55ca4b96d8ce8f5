package dto

import (
	"crew-route-service/internal/domain"
	"crew-route-service/internal/format"
	"time"
)

type LocationRequest struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Duration  int      `json:"duration" validate:"gte=0"`
}

// RouteOptionsRequest holds the optional knobs shared by every optimize endpoint.
// Nil fields take server defaults.
type RouteOptionsRequest struct {
	StartLocationIndex *int       `json:"startLocationIndex" validate:"omitempty,gte=0"`
	EndLocationIndex   *int       `json:"endLocationIndex" validate:"omitempty,gte=0"`
	StartTime          *time.Time `json:"startTime"`
	Algorithm          string     `json:"algorithm" validate:"omitempty,oneof=nearest 2opt"`
	AverageSpeed       *float64   `json:"averageSpeed" validate:"omitempty,gt=0"`
	MaxIterations      *int       `json:"maxIterations" validate:"omitempty,gte=1,lte=1000"`
}

type OptimizeRouteRequest struct {
	Locations []LocationRequest `json:"locations" validate:"required,min=1,dive"`
	RouteOptionsRequest
}

type BatchOptimizeRequest struct {
	Routes []OptimizeRouteRequest `json:"routes" validate:"required,min=1,dive"`
}

type ScheduleOptimizeRequest struct {
	RouteOptionsRequest
}

type RoutePointResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Latitude               float64   `json:"latitude"`
	Longitude              float64   `json:"longitude"`
	Duration               int       `json:"duration"`
	ArrivalTime            time.Time `json:"arrivalTime"`
	DepartureTime          time.Time `json:"departureTime"`
	DistanceFromPrevious   float64   `json:"distanceFromPrevious"`
	TravelTimeFromPrevious float64   `json:"travelTimeFromPrevious"`
}

type RouteResultResponse struct {
	Points          []RoutePointResponse `json:"points"`
	TotalDistance   float64              `json:"totalDistance"`
	TotalDuration   float64              `json:"totalDuration"`
	TotalTravelTime float64              `json:"totalTravelTime"`
}

// RouteSummary carries display strings for a route.
type RouteSummary struct {
	Stops           int    `json:"stops"`
	TotalDistance   string `json:"totalDistance"`
	TotalDuration   string `json:"totalDuration"`
	TotalTravelTime string `json:"totalTravelTime"`
	StartsAt        string `json:"startsAt,omitempty"`
	FinishesAt      string `json:"finishesAt,omitempty"`
}

type OptimizeRouteResponse struct {
	Route   RouteResultResponse `json:"route"`
	Summary RouteSummary        `json:"summary"`
}

type BatchOptimizeResponse struct {
	Routes []RouteResultResponse `json:"routes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func ToDomainLocations(in []LocationRequest) []domain.Location {
	out := make([]domain.Location, 0, len(in))
	for _, l := range in {
		loc := domain.Location{ID: l.ID, Name: l.Name, Duration: l.Duration}
		if l.Latitude != nil {
			loc.Latitude = *l.Latitude
		}
		if l.Longitude != nil {
			loc.Longitude = *l.Longitude
		}
		out = append(out, loc)
	}
	return out
}

func FromRouteResult(r *domain.RouteResult) RouteResultResponse {
	res := RouteResultResponse{
		Points:          make([]RoutePointResponse, 0, len(r.Points)),
		TotalDistance:   r.TotalDistance,
		TotalDuration:   r.TotalDuration,
		TotalTravelTime: r.TotalTravelTime,
	}
	for _, p := range r.Points {
		res.Points = append(res.Points, RoutePointResponse{
			ID:                     p.ID,
			Name:                   p.Name,
			Latitude:               p.Latitude,
			Longitude:              p.Longitude,
			Duration:               p.Duration,
			ArrivalTime:            p.ArrivalTime,
			DepartureTime:          p.DepartureTime,
			DistanceFromPrevious:   p.DistanceFromPrevious,
			TravelTimeFromPrevious: p.TravelTimeFromPrevious,
		})
	}
	return res
}

// NewRouteSummary formats totals and clock times in the route's own zone.
func NewRouteSummary(r *domain.RouteResult) RouteSummary {
	s := RouteSummary{
		Stops:           len(r.Points),
		TotalDistance:   format.Distance(r.TotalDistance),
		TotalDuration:   format.Duration(r.TotalDuration),
		TotalTravelTime: format.Duration(r.TotalTravelTime),
	}
	if len(r.Points) > 0 {
		s.StartsAt = format.Clock(r.Points[0].DepartureTime, nil)
		s.FinishesAt = format.Clock(r.Points[len(r.Points)-1].DepartureTime, nil)
	}
	return s
}
