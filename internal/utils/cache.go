package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys for list endpoints
const (
	AllOrdersKey   = "orders:all"
	AllTicketsKey  = "tickets:all"
	AllContactsKey = "contacts:all"
)

// UserOrdersKey is the cache key of one user's order list
func UserOrdersKey(userID string) string { return "orders:user:" + userID }

// OrdersByStatusKey is the cache key of the admin order list narrowed to one status
func OrdersByStatusKey(status string) string { return AllOrdersKey + ":status:" + status }

// UserTicketsKey is the cache key of one user's ticket list
func UserTicketsKey(userID string) string { return "tickets:user:" + userID }

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client always misses.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err // Stale or foreign payload
	}
	return true, nil
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}
