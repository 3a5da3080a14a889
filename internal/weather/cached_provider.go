package weather

import (
	"context"
	"log"

	"github.com/seaguard/driftwatch/internal/models"
)

// CachedProvider resolves a sample from the cache, then the live source,
// then the fallback. Only live samples are cached.
type CachedProvider struct {
	live     Provider
	fallback Provider
	cache    Cache
}

// NewCachedProvider creates the provider chain. live and cache may be nil.
func NewCachedProvider(live Provider, fallback Provider, cache Cache) *CachedProvider {
	if fallback == nil {
		fallback = NewFallbackProvider()
	}
	return &CachedProvider{live: live, fallback: fallback, cache: cache}
}

// Name returns the provider name
func (p *CachedProvider) Name() string {
	if p.live == nil {
		return "cached(" + p.fallback.Name() + ")"
	}
	return "cached(" + p.live.Name() + ")"
}

// Fetch never fails unless the fallback does
func (p *CachedProvider) Fetch(ctx context.Context, lat, lng float64) (models.WeatherSample, error) {
	if p.cache != nil {
		sample, ok, err := p.cache.Get(ctx, lat, lng)
		if err != nil {
			log.Printf("[Weather] cache lookup failed (%.4f, %.4f): %v", lat, lng, err)
		} else if ok {
			return sample, nil
		}
	}

	if p.live != nil {
		sample, err := p.live.Fetch(ctx, lat, lng)
		if err == nil {
			if p.cache != nil {
				if err := p.cache.Set(ctx, lat, lng, sample); err != nil {
					log.Printf("[Weather] cache store failed (%.4f, %.4f): %v", lat, lng, err)
				}
			}
			return sample, nil
		}
		log.Printf("[Weather] %s unavailable for (%.4f, %.4f), using fallback: %v", p.live.Name(), lat, lng, err)
	}

	return p.fallback.Fetch(ctx, lat, lng)
}
