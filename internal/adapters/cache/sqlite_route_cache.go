package cache

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite backed route cache for local runs without Redis.
// Expired rows are ignored on read and replaced on write.
type SqliteRouteCache struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db, Now: time.Now}
}

// InitSchema creates the route_cache table.
func (s *SqliteRouteCache) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS route_cache (
        cache_key  TEXT PRIMARY KEY,
        payload    TEXT NOT NULL,
        expires_at INTEGER NOT NULL
    );
	`)
	if err != nil {
		return fmt.Errorf("init route cache schema: %w", err)
	}

	return nil
}

// Fetch a cached route that has not expired yet.
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (_ *domain.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	var payload string
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload
    FROM route_cache
    WHERE cache_key = ?
        AND (expires_at = 0 OR expires_at > ?);
	`, key, s.now().UnixNano()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var route domain.RouteResult
	if err := json.Unmarshal([]byte(payload), &route); err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: decode: %w", key, err)
	}

	return &route, true, nil
}

// Store a route. A non-positive ttl never expires.
func (s *SqliteRouteCache) Put(ctx context.Context, key string, route *domain.RouteResult, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	if route == nil {
		return errors.New("insert route cache: route is nil")
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: encode: %w", key, err)
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixNano()
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (
        cache_key,
        payload,
        expires_at
    )
    VALUES (?, ?, ?)
	`, key, string(payload), expiresAt); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}

func (s *SqliteRouteCache) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
