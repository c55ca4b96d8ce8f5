package main

import (
	"context"
	"crew-route-service/internal/adapters/cache"
	"crew-route-service/internal/adapters/repositories"
	"crew-route-service/internal/api"
	"crew-route-service/internal/api/handlers"
	"crew-route-service/internal/config"
	"crew-route-service/internal/platform/db"
	"crew-route-service/internal/platform/logger"
	"crew-route-service/internal/ports"
	"crew-route-service/internal/services"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite, Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	lg := logger.Get()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, repo, err := openStore(ctx, cfg.Database)
	if err != nil {
		lg.Fatal("open store failed", zap.Error(err))
	}
	defer conn.Close()

	routeCache, closeCache, err := openCache(ctx, cfg, conn)
	if err != nil {
		lg.Fatal("open route cache failed", zap.Error(err))
	}
	defer closeCache()

	optimizer := services.NewOptimizer(routeCache, cfg.Redis.TTL, cfg.Routing.BatchConcurrency)
	router := api.NewRouter(api.Deps{
		Optimizer: optimizer,
		Locations: repo,
		Defaults: handlers.RouteDefaults{
			AverageSpeedKmh: cfg.Routing.AverageSpeedKmh,
			MaxIterations:   cfg.Routing.MaxIterations,
			MaxLocations:    cfg.Routing.MaxLocations,
			MaxBatchSize:    cfg.Routing.MaxBatchSize,
		},
		CORSOrigins: cfg.Server.CORSOrigins,
		Now:         time.Now,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore connects to Postgres when DATABASE_URL is set, otherwise to the
// local SQLite file, which is initialized and seeded on start.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, ports.LocationRepository, error) {
	if cfg.UsePostgres() {
		conn, err := db.Open(cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		return conn, repositories.NewPostgresLocationRepository(conn), nil
	}

	conn, err := db.OpenSqlite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}

	if err := initAndSeed(ctx, conn, cfg); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return conn, repositories.NewSqliteLocationRepository(conn), nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, cfg config.DatabaseConfig) error {
	if err := repositories.InitSchema(ctx, conn, repositories.DialectSqlite); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if !cfg.SeedOnBoot {
		return nil
	}

	if _, err := os.Stat(cfg.SeedPath); errors.Is(err, os.ErrNotExist) {
		logger.Get().Warn("seed file not found, skipping", zap.String("path", cfg.SeedPath))
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, conn, repositories.DialectSqlite, cfg.SeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// openCache prefers Redis. Without it, SQLite runs reuse their database
// and Postgres runs go uncached.
func openCache(ctx context.Context, cfg *config.Config, conn *sql.DB) (ports.RouteCache, func(), error) {
	noop := func() {}

	if cfg.Redis.Enabled() {
		client, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return cache.NewRedisRouteCache(client), func() { _ = client.Close() }, nil
	}

	if cfg.Database.UsePostgres() {
		return nil, noop, nil
	}

	c := cache.NewSqliteRouteCache(conn)
	if err := c.InitSchema(ctx); err != nil {
		return nil, noop, err
	}
	return c, noop, nil
}
