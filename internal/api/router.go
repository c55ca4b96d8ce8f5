package api

import (
	"crew-route-service/internal/api/handlers"
	"crew-route-service/internal/ports"
	"crew-route-service/internal/services"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Optimizer   *services.Optimizer
	Locations   ports.LocationRepository
	Defaults    handlers.RouteDefaults
	CORSOrigins []string
	Now         func() time.Time
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(recovery(), requestID(), requestLogger(), cors.New(corsConfig(d.CORSOrigins)))

	routeHandler := &handlers.RouteHandler{
		Optimizer: d.Optimizer,
		Defaults:  d.Defaults,
		Now:       d.Now,
	}
	scheduleHandler := &handlers.ScheduleHandler{
		Optimizer: d.Optimizer,
		Repo:      d.Locations,
		Defaults:  d.Defaults,
		Now:       d.Now,
	}

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/routes/optimize", routeHandler.Optimize)
	api.POST("/routes/optimize/batch", routeHandler.OptimizeBatch)
	api.POST("/schedules/:scheduleId/optimize", scheduleHandler.Optimize)

	r.NoRoute(func(c *gin.Context) {
		handlers.WriteError(c, http.StatusNotFound, handlers.CodeNotFound, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.WriteError(c, http.StatusMethodNotAllowed, handlers.CodeMethodNotAllowed, "method not allowed")
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader}
	cfg.ExposeHeaders = []string{RequestIDHeader}
	return cfg
}
