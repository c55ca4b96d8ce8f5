package ports

import (
	"context"
	"crew-route-service/internal/domain"
)

// Port: a boundary for reading the job locations of a stored schedule.
type LocationRepository interface {
	// Return the schedule's locations in stored position order.
	// An unknown or empty schedule yields an empty slice.
	ListScheduleLocations(ctx context.Context, scheduleID string) ([]domain.Location, error)
}
