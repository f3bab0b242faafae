package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i474232898/weathertracker/internal/weather"
)

const redisKeyPrefix = "weathertracker:history:"

// RedisStore keeps the lookup history in Redis lists, one list per location.
type RedisStore struct {
	client     *redis.Client
	maxHistory int
	maxAge     time.Duration
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisStore creates a RedisStore. maxHistory <= 0 means unlimited; maxAge <= 0 disables expiry.
func NewRedisStore(client *redis.Client, maxHistory int, maxAge time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

func redisKey(location string) string {
	return redisKeyPrefix + weather.LocationKey(location)
}

// SaveSnapshot appends the snapshot and trims the list to the retention limits.
func (s *RedisStore) SaveSnapshot(ctx context.Context, snapshot weather.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	key := redisKey(snapshot.Location)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	if s.maxHistory > 0 {
		pipe.LTrim(ctx, key, int64(-s.maxHistory), -1)
	}
	if s.maxAge > 0 {
		pipe.Expire(ctx, key, s.maxAge)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Recent returns the stored snapshots for a location, oldest first. Entries older than
// maxAge are skipped.
func (s *RedisStore) Recent(ctx context.Context, location string) ([]weather.Snapshot, error) {
	items, err := s.client.LRange(ctx, redisKey(location), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var cutoff time.Time
	if s.maxAge > 0 {
		cutoff = time.Now().Add(-s.maxAge)
	}

	out := make([]weather.Snapshot, 0, len(items))
	for _, item := range items {
		var snap weather.Snapshot
		if err := json.Unmarshal([]byte(item), &snap); err != nil {
			continue
		}
		if !cutoff.IsZero() && snap.FetchedAt.Before(cutoff) {
			continue
		}
		out = append(out, snap)
	}

	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}
