package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seaguard/driftwatch/internal/models"
)

// RedisClientInterface defines the Redis operations used by RedisCache
type RedisClientInterface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Close() error
}

// RedisCache shares cached samples between server instances. Coordinates are
// snapped to cells of cellDeg degrees, so two fetches share an entry when
// they fall in the same cell.
type RedisCache struct {
	client  RedisClientInterface
	ttl     time.Duration
	cellDeg float64
}

// NewRedisCache connects to Redis at addr
func NewRedisCache(addr string, ttl time.Duration, cellDeg float64) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCacheWithClient(client, ttl, cellDeg), nil
}

// NewRedisCacheWithClient creates a cache on an existing client (useful for testing)
func NewRedisCacheWithClient(client RedisClientInterface, ttl time.Duration, cellDeg float64) *RedisCache {
	if cellDeg <= 0 {
		cellDeg = 0.05
	}
	return &RedisCache{client: client, ttl: ttl, cellDeg: cellDeg}
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(lat, lng float64) string {
	return fmt.Sprintf("weather:%d:%d",
		int64(math.Floor(lat/c.cellDeg)),
		int64(math.Floor(lng/c.cellDeg)))
}

// Get returns the sample cached for the cell containing lat/lng
func (c *RedisCache) Get(ctx context.Context, lat, lng float64) (models.WeatherSample, bool, error) {
	data, err := c.client.Get(ctx, c.key(lat, lng)).Bytes()
	if err == redis.Nil {
		return models.WeatherSample{}, false, nil
	}
	if err != nil {
		return models.WeatherSample{}, false, fmt.Errorf("failed to get weather sample: %w", err)
	}

	var sample models.WeatherSample
	if err := json.Unmarshal(data, &sample); err != nil {
		return models.WeatherSample{}, false, fmt.Errorf("failed to unmarshal weather sample: %w", err)
	}
	return sample, true, nil
}

// Set stores sample for the cell containing lat/lng
func (c *RedisCache) Set(ctx context.Context, lat, lng float64, sample models.WeatherSample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal weather sample: %w", err)
	}
	return c.client.Set(ctx, c.key(lat, lng), data, c.ttl).Err()
}
