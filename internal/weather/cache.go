package weather

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/seaguard/driftwatch/internal/models"
	"github.com/seaguard/driftwatch/internal/spatial"
)

// Cache stores recent live samples so nearby lookups skip the network
type Cache interface {
	Get(ctx context.Context, lat, lng float64) (models.WeatherSample, bool, error)
	Set(ctx context.Context, lat, lng float64, sample models.WeatherSample) error
}

type cachedSample struct {
	At     models.Position
	Sample models.WeatherSample
}

// MemoryCache is an in-process LRU whose entries expire after ttl. A lookup
// hits when a cached fetch lies within radiusDeg in both latitude and longitude.
type MemoryCache struct {
	lru       *expirable.LRU[string, cachedSample]
	radiusDeg float64
}

// NewMemoryCache creates an in-memory weather cache
func NewMemoryCache(size int, ttl time.Duration, radiusDeg float64) *MemoryCache {
	return &MemoryCache{
		lru:       expirable.NewLRU[string, cachedSample](size, nil, ttl),
		radiusDeg: radiusDeg,
	}
}

func memoryKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

// Get returns the sample of the nearest cached fetch within radiusDeg of lat/lng
func (c *MemoryCache) Get(ctx context.Context, lat, lng float64) (models.WeatherSample, bool, error) {
	if entry, ok := c.lru.Get(memoryKey(lat, lng)); ok {
		return entry.Sample, true, nil
	}

	at := models.Position{Lat: lat, Lng: lng}
	var (
		nearest models.WeatherSample
		best    = math.Inf(1)
	)
	for _, entry := range c.lru.Values() {
		if !spatial.WithinDegrees(entry.At, at, c.radiusDeg) {
			continue
		}
		if d := spatial.DistanceKm(entry.At, at); d < best {
			best, nearest = d, entry.Sample
		}
	}
	if math.IsInf(best, 1) {
		return models.WeatherSample{}, false, nil
	}
	return nearest, true, nil
}

// Set caches sample as fetched at lat/lng
func (c *MemoryCache) Set(ctx context.Context, lat, lng float64, sample models.WeatherSample) error {
	c.lru.Add(memoryKey(lat, lng), cachedSample{
		At:     models.Position{Lat: lat, Lng: lng},
		Sample: sample,
	})
	return nil
}

// Len returns the number of cached fetches
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
