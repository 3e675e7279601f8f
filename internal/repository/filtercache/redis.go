package filtercache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// DefaultRedisKey is the key the external refresh job writes the
// materialized filter values under.
const DefaultRedisKey = "resources:filters"

// RedisConfig holds connection parameters for a redis-backed filter cache.
type RedisConfig struct {
	Addrs    []string
	Password string
	Key      string
}

// RedisCache implements usecase/filters.Cache over a redis key holding the
// JSON-encoded materialized filter values.
type RedisCache struct {
	client rueidis.Client
	key    string
}

// NewRedisCache creates a redis filter cache via rueidis.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultRedisKey
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &RedisCache{client: client, key: cfg.Key}, nil
}

// Get reads and decodes the projection. A missing key is domain.ErrNotFound.
func (c *RedisCache) Get(ctx context.Context) (domres.FilterValues, error) {
	cmd := c.client.B().Get().Key(c.key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return domres.FilterValues{}, fmt.Errorf("%w: no materialized filter values", domain.ErrNotFound)
		}
		return domres.FilterValues{}, fmt.Errorf("%w: read filter cache: %v", domain.ErrDependencyFailure, err)
	}
	return DecodeRedisPayload(data)
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	cmd := c.client.B().Ping().Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (c *RedisCache) Close() {
	c.client.Close()
}

// redisPayload mirrors the materialized document shape: the values live
// under a "filters" envelope next to the refresh timestamp.
type redisPayload struct {
	Filters   domres.FilterValues `json:"filters"`
	Timestamp string              `json:"timestamp"`
}

// DecodeRedisPayload parses the JSON the refresh job writes.
func DecodeRedisPayload(data []byte) (domres.FilterValues, error) {
	var payload redisPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domres.FilterValues{}, fmt.Errorf("%w: decode filter cache payload: %v", domain.ErrDependencyFailure, err)
	}
	return payload.Filters, nil
}
