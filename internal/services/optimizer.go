package services

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/logger"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultBatchConcurrency = 5

// OptimizeRequest is one route to compute.
type OptimizeRequest struct {
	Algorithm domain.Algorithm
	Locations []domain.Location
	Options   RouteOptions
}

// Optimizer runs route optimizations for the transport layer.
// The cache is optional; cache failures are logged and never fail a request.
type Optimizer struct {
	cache            ports.RouteCache
	cacheTTL         time.Duration
	batchConcurrency int
}

func NewOptimizer(cache ports.RouteCache, cacheTTL time.Duration, batchConcurrency int) *Optimizer {
	if batchConcurrency <= 0 {
		batchConcurrency = defaultBatchConcurrency
	}
	return &Optimizer{
		cache:            cache,
		cacheTTL:         cacheTTL,
		batchConcurrency: batchConcurrency,
	}
}

// Optimize computes (or loads from cache) the route for req.
func (o *Optimizer) Optimize(ctx context.Context, req OptimizeRequest) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "routes.Optimize")(&err)

	log := logger.WithContext(ctx)

	var key string
	if o.cache != nil {
		key, err = CacheKey(req)
		if err != nil {
			return nil, fmt.Errorf("optimize route: %w", err)
		}

		cached, ok, cacheErr := o.cache.Get(ctx, key)
		switch {
		case cacheErr != nil:
			obs.CacheLookupsTotal.WithLabelValues("error").Inc()
			log.Warn("route cache read failed", zap.Error(cacheErr))
		case ok:
			obs.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			obs.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	route, err := Optimize(req.Algorithm, req.Locations, req.Options)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidParameter) {
			result = "invalid"
		}
		obs.OptimizationsTotal.WithLabelValues(string(req.Algorithm), result).Inc()
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	obs.OptimizationsTotal.WithLabelValues(string(req.Algorithm), "ok").Inc()
	obs.RouteStops.Observe(float64(len(route.Points)))

	log.Debug("route optimized",
		zap.String("algorithm", string(req.Algorithm)),
		zap.Int("stops", len(route.Points)),
		zap.Float64("total_distance_m", route.TotalDistance),
	)

	if o.cache != nil {
		if putErr := o.cache.Put(ctx, key, route, o.cacheTTL); putErr != nil {
			log.Warn("route cache write failed", zap.Error(putErr))
		}
	}

	return route, nil
}
