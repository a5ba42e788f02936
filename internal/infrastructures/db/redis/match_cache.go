package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

const upcomingKey = "upcoming_matches"

// MatchCache keeps the last upstream answer for a short while so that
// frequent invocations do not hammer the upstream.
type MatchCache struct {
	redis *redis.Client
	key   string
}

func NewMatchCache(redis *redis.Client, namespace string) *MatchCache {
	key := upcomingKey
	if namespace != "" {
		key = namespace + ":" + upcomingKey
	}
	return &MatchCache{redis: redis, key: key}
}

func (c *MatchCache) GetUpcoming(ctx context.Context) ([]models.RawMatch, error) {
	data, err := c.redis.Get(ctx, c.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, derr.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get upcoming matches: %w", err)
	}

	var matches []models.RawMatch
	if err := json.Unmarshal([]byte(data), &matches); err != nil {
		return nil, fmt.Errorf("unmarshal cached matches: %w", err)
	}

	return matches, nil
}

func (c *MatchCache) SetUpcoming(ctx context.Context, matches []models.RawMatch, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("marshal matches for cache: %w", err)
	}

	if err := c.redis.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set upcoming matches: %w", err)
	}

	return nil
}
