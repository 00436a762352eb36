package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"arena-stats/internal/core/config"
	"arena-stats/internal/shared/logs"

	"github.com/redis/go-redis/v9"
)

// Connect establishes a client with retries and returns it.
func Connect(cfg config.Config) (*redis.Client, error) {
	retryCount := 5
	retryDelay := 5 * time.Second

	for attempt := 1; attempt <= retryCount; attempt++ {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisURL,
		})

		err := client.Ping(context.Background()).Err()
		if err == nil {
			logs.Info(fmt.Sprintf("Connected to Redis on attempt %d/%d", attempt, retryCount))
			return client, nil
		}
		logs.Error(fmt.Sprintf("Failed to connect to Redis. Attempt %d/%d. Error: %v", attempt, retryCount, err))
		time.Sleep(retryDelay)
	}

	message := fmt.Sprintf("Failed to connect to Redis after %d attempts. Exiting...", retryCount)
	logs.Error(message)
	return nil, errors.New(message)
}

// Cleanup closes the client, tolerating nil.
func Cleanup(ctx context.Context, client *redis.Client) {
	if client == nil {
		return
	}
	_ = client.Close()
}

// SaveJSON stores any JSON-serializable value at the provided key.
func SaveJSON(ctx context.Context, client *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// GetJSON retrieves a JSON value from the provided key and unmarshals it into the target.
func GetJSON(ctx context.Context, client *redis.Client, key string, target any) error {
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), target)
}

const (
	rosterKey     = "ddragon:roster"
	rosterETagKey = "ddragon:roster:etag"
)

// SaveChampionRoster stores the sorted champion roster under its cache key.
func SaveChampionRoster(ctx context.Context, client *redis.Client, names []string, ttl time.Duration) error {
	return SaveJSON(ctx, client, rosterKey, names, ttl)
}

// GetChampionRoster retrieves the cached champion roster.
// Returns redis.Nil error when no roster is cached.
func GetChampionRoster(ctx context.Context, client *redis.Client) ([]string, error) {
	var names []string
	if err := GetJSON(ctx, client, rosterKey, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SaveRosterETag stores the ETag of the last roster fetch.
func SaveRosterETag(ctx context.Context, client *redis.Client, etag string) error {
	if etag == "" {
		return nil
	}
	return client.Set(ctx, rosterETagKey, etag, 0).Err()
}

// GetRosterETag retrieves the stored roster ETag, if present.
func GetRosterETag(ctx context.Context, client *redis.Client) (string, error) {
	return client.Get(ctx, rosterETagKey).Result()
}

// RefreshLockKey returns the per-player lock key serializing match refreshes.
func RefreshLockKey(puuid string) string {
	return "matches:refresh_lock:" + puuid
}

// AcquireRefreshLock attempts to acquire a distributed lock for refresh operations.
// Returns true if the lock was acquired, a cleanup function to release the lock, and any error.
// The lock has a 300-second TTL to prevent deadlocks if a worker crashes.
// If lock is not acquired, cleanup will be nil.
func AcquireRefreshLock(ctx context.Context, client *redis.Client, lockKey string) (bool, func(), error) {
	lockAcquired, err := client.SetNX(ctx, lockKey, time.Now().UnixMilli(), 300*time.Second).Result()
	if err != nil {
		return false, nil, err
	}
	if !lockAcquired {
		return false, nil, nil
	}

	cleanup := func() {
		_ = client.Del(ctx, lockKey).Err()
	}
	return true, cleanup, nil
}
