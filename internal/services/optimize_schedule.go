package services

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// ScheduleRequest optimizes a stored schedule. A nil EndIndex ends
// wherever the route naturally finishes.
type ScheduleRequest struct {
	ScheduleID string
	Algorithm  domain.Algorithm
	EndIndex   *int
	Options    RouteOptions
}

// OptimizeSchedule loads a schedule's job locations and optimizes their order.
func (o *Optimizer) OptimizeSchedule(
	ctx context.Context,
	repo ports.LocationRepository,
	req ScheduleRequest,
) (*domain.RouteResult, error) {
	if repo == nil {
		return nil, errors.New("optimize schedule: repository must be non-nil")
	}

	scheduleID := strings.TrimSpace(req.ScheduleID)
	if scheduleID == "" {
		return nil, &domain.ParamError{Field: "scheduleId", Reason: "must be non-empty"}
	}

	locations, err := repo.ListScheduleLocations(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("optimize schedule %q: list locations: %w", scheduleID, err)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("optimize schedule %q: %w", scheduleID, domain.ErrNotFound)
	}

	opts := req.Options
	opts.EndIndex = opts.StartIndex
	if req.EndIndex != nil {
		opts.EndIndex = *req.EndIndex
	}
	if err := ValidateIndices(len(locations), opts.StartIndex, opts.EndIndex); err != nil {
		return nil, fmt.Errorf("optimize schedule %q: %w", scheduleID, err)
	}

	return o.Optimize(ctx, OptimizeRequest{
		Algorithm: req.Algorithm,
		Locations: locations,
		Options:   opts,
	})
}
