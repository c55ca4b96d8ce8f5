package repositories

import (
	"context"
	"crew-route-service/internal/geo"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Dialect selects the SQL flavour for schema and seed statements.
type Dialect string

const (
	DialectSqlite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type dialectSQL struct {
	createLocations string
	createIndex     string
	deleteSchedule  string
	insertLocation  string
}

var statementsByDialect = map[Dialect]dialectSQL{
	DialectSqlite: {
		createLocations: `
	CREATE TABLE IF NOT EXISTS job_locations (
        schedule_id      TEXT NOT NULL,
        position         INTEGER NOT NULL,
        location_id      TEXT NOT NULL,
        name             TEXT NOT NULL DEFAULT '',
        latitude         REAL NOT NULL,
        longitude        REAL NOT NULL,
        duration_minutes INTEGER NOT NULL DEFAULT 0,
        PRIMARY KEY (schedule_id, position)
    );
	`,
		createIndex: `
	CREATE INDEX IF NOT EXISTS idx_job_locations_location
    ON job_locations(location_id);
	`,
		deleteSchedule: `DELETE FROM job_locations WHERE schedule_id = ?;`,
		insertLocation: `
	INSERT INTO job_locations (
        schedule_id,
        position,
        location_id,
        name,
        latitude,
        longitude,
        duration_minutes
    )
    VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
	},
	DialectPostgres: {
		createLocations: `
	CREATE TABLE IF NOT EXISTS job_locations (
        schedule_id      TEXT NOT NULL,
        position         INTEGER NOT NULL,
        location_id      TEXT NOT NULL,
        name             TEXT NOT NULL DEFAULT '',
        latitude         DOUBLE PRECISION NOT NULL,
        longitude        DOUBLE PRECISION NOT NULL,
        duration_minutes INTEGER NOT NULL DEFAULT 0 CHECK (duration_minutes >= 0),
        PRIMARY KEY (schedule_id, position)
    );
	`,
		createIndex: `
	CREATE INDEX IF NOT EXISTS idx_job_locations_location
    ON job_locations(location_id);
	`,
		deleteSchedule: `DELETE FROM job_locations WHERE schedule_id = $1;`,
		insertLocation: `
	INSERT INTO job_locations (
        schedule_id,
        position,
        location_id,
        name,
        latitude,
        longitude,
        duration_minutes
    )
    VALUES ($1, $2, $3, $4, $5, $6, $7);
	`,
	},
}

func statementsFor(d Dialect) (dialectSQL, error) {
	s, ok := statementsByDialect[d]
	if !ok {
		return dialectSQL{}, fmt.Errorf("unsupported dialect %q", d)
	}
	return s, nil
}

// Initialize the job_locations schema for the given dialect.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q, err := statementsFor(dialect)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range []string{q.createLocations, q.createIndex} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ScheduleSeed struct {
	ScheduleID string         `json:"schedule_id"`
	Locations  []LocationSeed `json:"locations"`
}

type LocationSeed struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Duration  int     `json:"duration"`
}

// Populate the database with schedules from a JSON file.
// Each seeded schedule replaces any stored rows with the same schedule_id.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed schedules: read %q: %w", jsonPath, err)
	}

	var data []ScheduleSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed schedules: parse json: %w", err)
	}

	return SeedSchedules(ctx, db, dialect, data)
}

// SeedSchedules validates and writes schedules in one transaction.
func SeedSchedules(ctx context.Context, db *sql.DB, dialect Dialect, schedules []ScheduleSeed) error {
	if db == nil {
		return errors.New("seed schedules: DB is nil")
	}

	q, err := statementsFor(dialect)
	if err != nil {
		return fmt.Errorf("seed schedules: %w", err)
	}

	for i, s := range schedules {
		if err := validateSeed(s); err != nil {
			return fmt.Errorf("seed schedules: item at index %d: %w", i+1, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed schedules: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, q.insertLocation)
	if err != nil {
		return fmt.Errorf("seed schedules: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range schedules {
		scheduleID := strings.TrimSpace(s.ScheduleID)
		if _, err := tx.ExecContext(ctx, q.deleteSchedule, scheduleID); err != nil {
			return fmt.Errorf("seed schedules: clear schedule_id=%q: %w", scheduleID, err)
		}

		for pos, l := range s.Locations {
			_, err := stmt.ExecContext(ctx,
				scheduleID,
				pos,
				strings.TrimSpace(l.ID),
				strings.TrimSpace(l.Name),
				l.Latitude,
				l.Longitude,
				l.Duration,
			)
			if err != nil {
				return fmt.Errorf("seed schedules: insert schedule_id=%q position=%d: %w", scheduleID, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed schedules: commit tx: %w", err)
	}

	return nil
}

func validateSeed(s ScheduleSeed) error {
	if strings.TrimSpace(s.ScheduleID) == "" {
		return errors.New("schedule_id cannot be empty")
	}

	for j, l := range s.Locations {
		if strings.TrimSpace(l.ID) == "" {
			return fmt.Errorf("location %d: id cannot be empty", j+1)
		}
		if !geo.ValidCoordinate(l.Latitude, l.Longitude) {
			return fmt.Errorf("location %d: invalid coordinates (%v, %v)", j+1, l.Latitude, l.Longitude)
		}
		if l.Duration < 0 {
			return fmt.Errorf("location %d: duration cannot be negative", j+1)
		}
	}

	return nil
}
