package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./data/driftwatch.db", cfg.DBPath)
	assert.Equal(t, 30*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, 0.05, cfg.WeatherCacheRadiusDeg)
	assert.Equal(t, 100, cfg.DefaultNumPaths)
	assert.Equal(t, 6, cfg.DefaultSimHours)
	assert.False(t, cfg.HourlyCentroids)
	assert.Empty(t, cfg.RedisAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("DB_PATH", "/tmp/drift.db")
	t.Setenv("WEATHER_CACHE_TTL", "15m")
	t.Setenv("WEATHER_TIMEOUT", "3")
	t.Setenv("WEATHER_CACHE_RADIUS_DEG", "0.1")
	t.Setenv("WEATHER_OFFLINE", "true")
	t.Setenv("DEFAULT_NUM_PATHS", "150")
	t.Setenv("HOURLY_CENTROIDS", "1")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "/tmp/drift.db", cfg.DBPath)
	assert.Equal(t, 15*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, 3*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, 0.1, cfg.WeatherCacheRadiusDeg)
	assert.True(t, cfg.WeatherOffline)
	assert.Equal(t, 150, cfg.DefaultNumPaths)
	assert.True(t, cfg.HourlyCentroids)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_InvalidValuesUseDefaults(t *testing.T) {
	t.Setenv("DEFAULT_NUM_PATHS", "lots")
	t.Setenv("STALE_AFTER", "soon")
	t.Setenv("WEATHER_OFFLINE", "maybe")

	cfg := Load()

	assert.Equal(t, 100, cfg.DefaultNumPaths)
	assert.Equal(t, 30*time.Minute, cfg.StaleAfter)
	assert.False(t, cfg.WeatherOffline)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"too few paths", func(c *Config) { c.DefaultNumPaths = 5 }},
		{"too many paths", func(c *Config) { c.DefaultNumPaths = 201 }},
		{"zero hours", func(c *Config) { c.DefaultSimHours = 0 }},
		{"too many hours", func(c *Config) { c.DefaultSimHours = 13 }},
		{"zero radius", func(c *Config) { c.WeatherCacheRadiusDeg = 0 }},
		{"no sweep workers", func(c *Config) { c.SweepConcurrency = 0 }},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
