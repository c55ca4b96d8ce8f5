package repositories

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the LocationRepository port.
type SqliteLocationRepository struct{ DB *sql.DB }

func NewSqliteLocationRepository(db *sql.DB) *SqliteLocationRepository {
	return &SqliteLocationRepository{DB: db}
}

// Return a schedule's job locations in stored position order.
func (s *SqliteLocationRepository) ListScheduleLocations(
	ctx context.Context,
	scheduleID string,
) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "locations.sqlite.ListScheduleLocations")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite location repository: DB is nil")
	}

	query := `
	SELECT
		location_id,
		name,
		latitude,
		longitude,
		duration_minutes
	FROM job_locations
	WHERE schedule_id = ?
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list schedule locations: query job_locations table: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}

func scanLocations(rows *sql.Rows) ([]domain.Location, error) {
	locations := make([]domain.Location, 0, 32)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.Duration); err != nil {
			return nil, fmt.Errorf("list schedule locations: scan row: %w", err)
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedule locations: row iteration: %w", err)
	}

	return locations, nil
}
