package handlers

import (
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/geo"
	"crew-route-service/internal/services"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RouteDefaults are the server-side defaults and limits for optimize requests.
type RouteDefaults struct {
	AverageSpeedKmh float64
	MaxIterations   int
	MaxLocations    int
	MaxBatchSize    int
}

func (d RouteDefaults) withFallbacks() RouteDefaults {
	if !(d.AverageSpeedKmh > 0) {
		d.AverageSpeedKmh = geo.DefaultAverageSpeedKmh
	}
	if d.MaxIterations <= 0 {
		d.MaxIterations = services.DefaultMaxIterations
	}
	if d.MaxLocations <= 0 {
		d.MaxLocations = 200
	}
	if d.MaxBatchSize <= 0 {
		d.MaxBatchSize = 20
	}
	return d
}

// RouteHandler optimizes routes for caller-supplied locations.
type RouteHandler struct {
	Optimizer *services.Optimizer
	Defaults  RouteDefaults
	// Now supplies the start time when a request omits one.
	Now func() time.Time
}

// Optimize handles POST /api/routes/optimize.
func (h *RouteHandler) Optimize(c *gin.Context) {
	var req dto.OptimizeRouteRequest
	if !decodeJSON(c, &req, false) {
		return
	}

	svcReq, err := h.toServiceRequest(req, "")
	if err != nil {
		writeServiceError(c, "optimize route", err)
		return
	}

	route, err := h.Optimizer.Optimize(c.Request.Context(), svcReq)
	if err != nil {
		writeServiceError(c, "optimize route", err)
		return
	}

	c.JSON(http.StatusOK, dto.OptimizeRouteResponse{
		Route:   dto.FromRouteResult(route),
		Summary: dto.NewRouteSummary(route),
	})
}

// OptimizeBatch handles POST /api/routes/optimize/batch. Every route is
// validated before any is computed.
func (h *RouteHandler) OptimizeBatch(c *gin.Context) {
	var req dto.BatchOptimizeRequest
	if !decodeJSON(c, &req, false) {
		return
	}

	if err := validateStruct(req); err != nil {
		writeServiceError(c, "optimize batch", err)
		return
	}

	defaults := h.Defaults.withFallbacks()
	if len(req.Routes) > defaults.MaxBatchSize {
		writeServiceError(c, "optimize batch", &domain.ParamError{
			Field:  "routes",
			Reason: fmt.Sprintf("at most %d routes per batch", defaults.MaxBatchSize),
		})
		return
	}

	svcReqs := make([]services.OptimizeRequest, 0, len(req.Routes))
	for i, r := range req.Routes {
		svcReq, err := h.toServiceRequest(r, fmt.Sprintf("routes[%d].", i))
		if err != nil {
			writeServiceError(c, "optimize batch", err)
			return
		}
		svcReqs = append(svcReqs, svcReq)
	}

	routes, err := h.Optimizer.OptimizeBatch(c.Request.Context(), svcReqs)
	if err != nil {
		writeServiceError(c, "optimize batch", err)
		return
	}

	res := dto.BatchOptimizeResponse{Routes: make([]dto.RouteResultResponse, 0, len(routes))}
	for _, r := range routes {
		res.Routes = append(res.Routes, dto.FromRouteResult(r))
	}

	c.JSON(http.StatusOK, res)
}

func (h *RouteHandler) toServiceRequest(req dto.OptimizeRouteRequest, fieldPrefix string) (services.OptimizeRequest, error) {
	if err := validateStruct(req); err != nil {
		if pe, ok := err.(*domain.ParamError); ok {
			pe.Field = fieldPrefix + pe.Field
		}
		return services.OptimizeRequest{}, err
	}

	defaults := h.Defaults.withFallbacks()
	if len(req.Locations) > defaults.MaxLocations {
		return services.OptimizeRequest{}, &domain.ParamError{
			Field:  fieldPrefix + "locations",
			Reason: fmt.Sprintf("at most %d locations per route", defaults.MaxLocations),
		}
	}

	algorithm, opts, err := buildOptions(defaults, h.Now, req.RouteOptionsRequest)
	if err != nil {
		return services.OptimizeRequest{}, err
	}

	if err := services.ValidateIndices(len(req.Locations), opts.StartIndex, opts.EndIndex); err != nil {
		if pe, ok := err.(*domain.ParamError); ok {
			pe.Field = fieldPrefix + pe.Field
		}
		return services.OptimizeRequest{}, err
	}

	return services.OptimizeRequest{
		Algorithm: algorithm,
		Locations: dto.ToDomainLocations(req.Locations),
		Options:   opts,
	}, nil
}

// buildOptions applies defaults to the optional request fields. The end index
// defaults to the start index, which lets the route end wherever it finishes.
func buildOptions(
	defaults RouteDefaults,
	now func() time.Time,
	o dto.RouteOptionsRequest,
) (domain.Algorithm, services.RouteOptions, error) {
	algorithm, err := domain.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return "", services.RouteOptions{}, err
	}

	startTime := time.Now()
	if now != nil {
		startTime = now()
	}
	if o.StartTime != nil {
		startTime = *o.StartTime
	}

	opts := services.DefaultRouteOptions(startTime)
	opts.AverageSpeedKmh = defaults.AverageSpeedKmh
	opts.MaxIterations = defaults.MaxIterations

	if o.StartLocationIndex != nil {
		opts.StartIndex = *o.StartLocationIndex
	}
	opts.EndIndex = opts.StartIndex
	if o.EndLocationIndex != nil {
		opts.EndIndex = *o.EndLocationIndex
	}
	if o.AverageSpeed != nil {
		opts.AverageSpeedKmh = *o.AverageSpeed
	}
	if o.MaxIterations != nil {
		opts.MaxIterations = *o.MaxIterations
	}

	return algorithm, opts, nil
}
