package ports

import (
	"context"
	"crew-route-service/internal/domain"
	"time"
)

// Port: a cache of computed routes keyed by a request fingerprint.
type RouteCache interface {
	// Return the cached route and true on a hit, or false on a miss.
	Get(ctx context.Context, key string) (*domain.RouteResult, bool, error)
	// Store a route for the given time-to-live.
	Put(ctx context.Context, key string, route *domain.RouteResult, ttl time.Duration) error
}
