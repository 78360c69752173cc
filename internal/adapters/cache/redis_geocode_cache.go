package cache

import (
	"context"
	"errors"
	"fmt"
	"route-schedule-service/internal/domain"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocache:"

// Redis-backed geocode cache for deployments where several workstations
// share one cache. Entries are hashes keyed "geocache:<address hash>"
// with lat/lng fields, so raw addresses never reach the server.
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

// Get returns the cached coordinates for an address, if present.
func (s *RedisGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if s.Client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, false, nil
	}

	vals, err := s.Client.HGetAll(ctx, redisKeyPrefix+domain.HashAddress(address)).Result()
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: redis hgetall: %w", err)
	}
	if len(vals) == 0 {
		return domain.Coordinates{}, false, nil
	}

	lat, err1 := strconv.ParseFloat(vals["lat"], 64)
	lng, err2 := strconv.ParseFloat(vals["lng"], 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: malformed entry for hash")
	}

	return domain.Coordinates{Lat: lat, Lng: lng}, true, nil
}

// Put inserts or replaces the cached coordinates for an address.
func (s *RedisGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if strings.TrimSpace(address) == "" {
		return errors.New("put geocode cache: empty address key")
	}

	key := redisKeyPrefix + domain.HashAddress(address)
	err := s.Client.HSet(ctx, key,
		"lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		"lng", strconv.FormatFloat(coords.Lng, 'f', -1, 64),
	).Err()
	if err != nil {
		return fmt.Errorf("put geocode cache: redis hset: %w", err)
	}

	return nil
}

// Clear scans and deletes every cache entry, returning the count.
func (s *RedisGeocodeCache) Clear(ctx context.Context) (int64, error) {
	if s.Client == nil {
		return 0, errors.New("geocode cache: redis client is nil")
	}

	var deleted int64
	iter := s.Client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n, err := s.Client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, fmt.Errorf("clear geocode cache: redis del: %w", err)
		}
		deleted += n
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("clear geocode cache: redis scan: %w", err)
	}

	return deleted, nil
}
