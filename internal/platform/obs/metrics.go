package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OptimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_optimizations_total",
		Help: "Route optimizations by algorithm and result",
	}, []string{"algorithm", "result"})

	RouteStops = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_optimization_stops",
		Help:    "Number of stops per optimized route",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200},
	})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_cache_lookups_total",
		Help: "Route cache lookups by outcome (hit, miss, error)",
	}, []string{"outcome"})

	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "operation_duration_seconds",
		Help:    "Duration of timed operations",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"op", "result"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
