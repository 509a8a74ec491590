package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelplanner/service-trip/internal/domain/place"
)

const searchCachePrefix = "trip:places:search:"

// RedisSearchCache stores prefix search results in Redis as JSON with a TTL.
type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSearchCache creates a cache whose entries expire after ttl.
func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: ttl}
}

// searchKey folds case because the search it memoizes ignores case.
func searchKey(query string) string {
	return searchCachePrefix + strings.ToLower(query)
}

// Get returns the cached candidates for query. ok is false on a miss.
func (c *RedisSearchCache) Get(ctx context.Context, query string) ([]place.Candidate, bool, error) {
	raw, err := c.client.Get(ctx, searchKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read search cache: %w", err)
	}

	var candidates []place.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached search: %w", err)
	}
	return candidates, true, nil
}

// Set caches candidates for query.
func (c *RedisSearchCache) Set(ctx context.Context, query string, candidates []place.Candidate) error {
	if candidates == nil {
		candidates = []place.Candidate{}
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to encode search: %w", err)
	}
	if err := c.client.Set(ctx, searchKey(query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}
	return nil
}

// Flush removes every cached search.
func (c *RedisSearchCache) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, searchCachePrefix+"*", 200).Result()
		if err != nil {
			return fmt.Errorf("failed to scan search cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to flush search cache: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
