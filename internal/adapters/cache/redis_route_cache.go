package cache

import (
	"context"
	"crew-route-service/internal/domain"
	"crew-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache stores optimized routes as JSON values with a TTL.
// Keys are request fingerprints computed by the caller.
type RedisRouteCache struct {
	Client redis.UniversalClient
	Prefix string
}

func NewRedisRouteCache(client redis.UniversalClient) *RedisRouteCache {
	return &RedisRouteCache{Client: client, Prefix: "crew-route:"}
}

// Dial connects to Redis and verifies the connection before returning it.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("dial redis %q: %w", addr, err)
	}

	return client, nil
}

// Fetch a cached route. A missing key is a miss, not an error.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ *domain.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	var route domain.RouteResult
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: decode: %w", key, err)
	}

	return &route, true, nil
}

// Store a route. A non-positive ttl keeps the entry until evicted.
func (c *RedisRouteCache) Put(ctx context.Context, key string, route *domain.RouteResult, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.redis.Put")(&err)

	if c.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	if route == nil {
		return errors.New("insert route cache: route is nil")
	}

	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: encode: %w", key, err)
	}

	if ttl < 0 {
		ttl = 0
	}

	if err := c.Client.Set(ctx, c.Prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
