package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	indexCursorKey = "news:index:cursor"
	trendingKey    = "news:trending"
)

// Redis holds the small pieces of mutable operational state: the search
// index sync cursor and the trending leaderboard.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, addr string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Redis{client: client}, nil
}

// Close shuts down the client.
func (r *Redis) Close() error { return r.client.Close() }

// Ping checks connectivity (health endpoint).
func (r *Redis) Ping(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// IndexCursor returns the last indexed article ID, or 0 when no sync has
// run yet.
func (r *Redis) IndexCursor(ctx context.Context) (int64, error) {
	val, err := r.client.Get(ctx, indexCursorKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read index cursor: %w", err)
	}
	cursor, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt index cursor %q: %w", val, err)
	}
	return cursor, nil
}

// SetIndexCursor advances the sync cursor.
func (r *Redis) SetIndexCursor(ctx context.Context, cursor int64) error {
	if err := r.client.Set(ctx, indexCursorKey, cursor, 0).Err(); err != nil {
		return fmt.Errorf("failed to store index cursor: %w", err)
	}
	return nil
}

// ReplaceTrending atomically swaps the trending leaderboard with freshly
// computed popularity scores.
func (r *Redis) ReplaceTrending(ctx context.Context, scores map[int64]float64) error {
	if len(scores) == 0 {
		if err := r.client.Del(ctx, trendingKey).Err(); err != nil {
			return fmt.Errorf("failed to clear trending set: %w", err)
		}
		return nil
	}

	members := make([]redis.Z, 0, len(scores))
	for id, score := range scores {
		members = append(members, redis.Z{Score: score, Member: strconv.FormatInt(id, 10)})
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, trendingKey)
	pipe.ZAdd(ctx, trendingKey, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace trending set: %w", err)
	}
	return nil
}

// Trending returns the top article IDs by popularity score, highest first.
func (r *Redis) Trending(ctx context.Context, limit int) ([]int64, error) {
	vals, err := r.client.ZRevRange(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read trending set: %w", err)
	}

	ids := make([]int64, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt trending member %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
