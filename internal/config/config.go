package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port    string
	DBPath  string
	LogFile string // empty logs to stdout only

	// Weather lookup
	WeatherAPIURL         string
	MarineAPIURL          string
	WeatherOffline        bool // skip the live source, always synthesize
	WeatherTimeout        time.Duration
	WeatherCacheTTL       time.Duration
	WeatherCacheRadiusDeg float64
	WeatherCacheSize      int
	RedisAddr             string // empty uses the in-memory cache

	// Drift simulation defaults
	DefaultNumPaths int
	DefaultSimHours int
	HourlyCentroids bool

	// Fisherman state read model
	StateCacheTTL  time.Duration
	StateCacheSize int

	// Overdue watch
	StaleAfter       time.Duration
	SweepInterval    time.Duration
	SweepConcurrency int

	RateLimit  int
	RateWindow time.Duration
}

// Load 加载配置
func Load() *Config {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", ":8080"),
		DBPath:  getEnv("DB_PATH", "./data/driftwatch.db"),
		LogFile: getEnv("LOG_FILE", ""),

		WeatherAPIURL:         getEnv("WEATHER_API_URL", ""),
		MarineAPIURL:          getEnv("MARINE_API_URL", ""),
		WeatherOffline:        getBoolEnv("WEATHER_OFFLINE", false),
		WeatherTimeout:        getDurationEnv("WEATHER_TIMEOUT", 10*time.Second),
		WeatherCacheTTL:       getDurationEnv("WEATHER_CACHE_TTL", 30*time.Minute),
		WeatherCacheRadiusDeg: getFloatEnv("WEATHER_CACHE_RADIUS_DEG", 0.05),
		WeatherCacheSize:      getIntEnv("WEATHER_CACHE_SIZE", 256),
		RedisAddr:             getEnv("REDIS_ADDR", ""),

		DefaultNumPaths: getIntEnv("DEFAULT_NUM_PATHS", 100),
		DefaultSimHours: getIntEnv("DEFAULT_SIM_HOURS", 6),
		HourlyCentroids: getBoolEnv("HOURLY_CENTROIDS", false),

		StateCacheTTL:  getDurationEnv("STATE_CACHE_TTL", time.Minute),
		StateCacheSize: getIntEnv("STATE_CACHE_SIZE", 1024),

		StaleAfter:       getDurationEnv("STALE_AFTER", 30*time.Minute),
		SweepInterval:    getDurationEnv("SWEEP_INTERVAL", 5*time.Minute),
		SweepConcurrency: getIntEnv("SWEEP_CONCURRENCY", 4),

		RateLimit:  getIntEnv("RATE_LIMIT", 120),
		RateWindow: getDurationEnv("RATE_WINDOW", time.Minute),
	}
}

// Validate checks the simulation defaults and worker settings
func (c *Config) Validate() error {
	if c.DefaultNumPaths < 10 || c.DefaultNumPaths > 200 {
		return fmt.Errorf("DEFAULT_NUM_PATHS must be between 10 and 200, got %d", c.DefaultNumPaths)
	}
	if c.DefaultSimHours < 1 || c.DefaultSimHours > 12 {
		return fmt.Errorf("DEFAULT_SIM_HOURS must be between 1 and 12, got %d", c.DefaultSimHours)
	}
	if c.WeatherCacheRadiusDeg <= 0 {
		return fmt.Errorf("WEATHER_CACHE_RADIUS_DEG must be positive, got %g", c.WeatherCacheRadiusDeg)
	}
	if c.WeatherCacheSize < 1 || c.StateCacheSize < 1 {
		return fmt.Errorf("cache sizes must be positive")
	}
	if c.SweepConcurrency < 1 {
		return fmt.Errorf("SWEEP_CONCURRENCY must be at least 1, got %d", c.SweepConcurrency)
	}
	if c.StaleAfter <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("STALE_AFTER and SWEEP_INTERVAL must be positive")
	}
	if c.RateLimit < 1 || c.RateWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_WINDOW must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getDurationEnv accepts Go durations ("90s", "30m") or plain seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
