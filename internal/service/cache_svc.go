package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/topictube/topictube-go/internal/model"
)

const groupsKey = "groups:all"

// CacheService provides a Redis cache-aside layer for the grouped corpus view.
type CacheService struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCacheService creates a new CacheService. If redisURL is empty or connection
// fails, it returns a CacheService with a nil client (cache operations become no-ops).
func NewCacheService(redisURL string, ttl time.Duration, log zerolog.Logger) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, ttl: ttl}
}

// NewCacheServiceWithClient wraps an existing client.
func NewCacheServiceWithClient(rdb *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{rdb: rdb, ttl: ttl}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetGroups returns the cached groups, or nil if not cached or cache is disabled.
func (c *CacheService) GetGroups(ctx context.Context) ([]model.Group, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, groupsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var groups []model.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// SetGroups stores the grouped view.
func (c *CacheService) SetGroups(ctx context.Context, groups []model.Group) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, groupsKey, b, c.ttl).Err()
}

// InvalidateGroups drops the grouped view (called after every ingest).
func (c *CacheService) InvalidateGroups(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, groupsKey).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
