package repositories

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the LocationRepository port.
// The DB is expected to use the pgx stdlib driver.
type PostgresLocationRepository struct{ DB *sql.DB }

func NewPostgresLocationRepository(db *sql.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{DB: db}
}

func (p *PostgresLocationRepository) ListScheduleLocations(
	ctx context.Context,
	scheduleID string,
) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "locations.postgres.ListScheduleLocations")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres location repository: DB is nil")
	}

	query := `
	SELECT
		location_id,
		name,
		latitude,
		longitude,
		duration_minutes
	FROM job_locations
	WHERE schedule_id = $1
	ORDER BY position;
	`
	rows, err := p.DB.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list schedule locations: query job_locations table: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}
