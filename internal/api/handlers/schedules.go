package handlers

import (
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/ports"
	"crew-route-service/internal/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler optimizes the stored job locations of a schedule.
type ScheduleHandler struct {
	Optimizer *services.Optimizer
	Repo      ports.LocationRepository
	Defaults  RouteDefaults
	Now       func() time.Time
}

// Optimize handles POST /api/schedules/:scheduleId/optimize. The body is optional.
func (h *ScheduleHandler) Optimize(c *gin.Context) {
	var req dto.ScheduleOptimizeRequest
	if !decodeJSON(c, &req, true) {
		return
	}

	if err := validateStruct(req); err != nil {
		writeServiceError(c, "optimize schedule", err)
		return
	}

	algorithm, opts, err := buildOptions(h.Defaults.withFallbacks(), h.Now, req.RouteOptionsRequest)
	if err != nil {
		writeServiceError(c, "optimize schedule", err)
		return
	}

	route, err := h.Optimizer.OptimizeSchedule(c.Request.Context(), h.Repo, services.ScheduleRequest{
		ScheduleID: c.Param("scheduleId"),
		Algorithm:  algorithm,
		EndIndex:   req.EndLocationIndex,
		Options:    opts,
	})
	if err != nil {
		writeServiceError(c, "optimize schedule", err)
		return
	}

	c.JSON(http.StatusOK, dto.OptimizeRouteResponse{
		Route:   dto.FromRouteResult(route),
		Summary: dto.NewRouteSummary(route),
	})
}
