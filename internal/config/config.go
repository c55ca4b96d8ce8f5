package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Routing  RoutingConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// DatabaseConfig selects the schedule store. A non-empty URL means Postgres,
// otherwise the SQLite file at SQLitePath is used.
type DatabaseConfig struct {
	URL        string
	SQLitePath string
	SeedPath   string
	SeedOnBoot bool
}

// RedisConfig enables the route cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RoutingConfig struct {
	AverageSpeedKmh  float64
	MaxIterations    int
	MaxLocations     int
	BatchConcurrency int
	MaxBatchSize     int
}

// Load loads configuration from a .env file, if present, and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
			CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Database: DatabaseConfig{
			URL:        getEnv("DATABASE_URL", ""),
			SQLitePath: getEnv("DB_PATH", "data/app.db"),
			SeedPath:   getEnv("SEED_PATH", "data/seeds/schedules.json"),
			SeedOnBoot: getEnvAsBool("SEED_ON_BOOT", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("ROUTE_CACHE_TTL", 15*time.Minute),
		},
		Routing: RoutingConfig{
			AverageSpeedKmh:  getEnvAsFloat("ROUTE_AVERAGE_SPEED_KMH", 30),
			MaxIterations:    getEnvAsInt("ROUTE_MAX_ITERATIONS", 100),
			MaxLocations:     getEnvAsInt("ROUTE_MAX_LOCATIONS", 200),
			BatchConcurrency: getEnvAsInt("ROUTE_BATCH_CONCURRENCY", 5),
			MaxBatchSize:     getEnvAsInt("ROUTE_MAX_BATCH_SIZE", 20),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !(c.Routing.AverageSpeedKmh > 0) {
		return fmt.Errorf("ROUTE_AVERAGE_SPEED_KMH must be positive, got %v", c.Routing.AverageSpeedKmh)
	}
	if c.Routing.MaxLocations <= 0 {
		return fmt.Errorf("ROUTE_MAX_LOCATIONS must be positive, got %d", c.Routing.MaxLocations)
	}
	if c.Routing.MaxBatchSize <= 0 {
		return fmt.Errorf("ROUTE_MAX_BATCH_SIZE must be positive, got %d", c.Routing.MaxBatchSize)
	}
	if c.Routing.MaxIterations <= 0 {
		c.Routing.MaxIterations = 100
	}
	if c.Routing.BatchConcurrency <= 0 {
		c.Routing.BatchConcurrency = 5
	}
	return nil
}

// UsePostgres reports whether a Postgres URL was configured.
func (c DatabaseConfig) UsePostgres() bool {
	return strings.TrimSpace(c.URL) != ""
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	return getEnv(key, fallback)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
