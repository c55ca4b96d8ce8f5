package main

import (
	"context"
	"crew-route-service/internal/adapters/repositories"
	"crew-route-service/internal/config"
	"crew-route-service/internal/platform/db"
	"crew-route-service/internal/platform/logger"
	"database/sql"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool prepares a Postgres database: it creates the job_locations schema
// and seeds schedules from a JSON file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/schedules.json"), "schedules JSON file")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	if err := logger.Init(config.Get("ENVIRONMENT", "development")); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	lg := logger.Get()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		lg.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		lg.Fatal("open database failed", zap.Error(err))
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, *seedPath, *schemaOnly); err != nil {
		lg.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, schemaOnly bool) error {
	lg := logger.Get()

	lg.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, repositories.DialectPostgres); err != nil {
		return err
	}
	lg.Info("schema ready")

	if schemaOnly {
		return nil
	}

	lg.Info("seeding database", zap.String("path", seedPath))
	if err := repositories.SeedFromJSON(ctx, conn, repositories.DialectPostgres, seedPath); err != nil {
		return err
	}
	lg.Info("seeding complete")

	return nil
}
