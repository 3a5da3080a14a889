package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/seaguard/driftwatch/internal/api"
	"github.com/seaguard/driftwatch/internal/config"
	"github.com/seaguard/driftwatch/internal/database"
	"github.com/seaguard/driftwatch/internal/drift"
	"github.com/seaguard/driftwatch/internal/repository"
	"github.com/seaguard/driftwatch/internal/service"
	"github.com/seaguard/driftwatch/internal/watch"
	"github.com/seaguard/driftwatch/internal/weather"
)

func main() {
	// 加载配置
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()
	db := database.GetDB()

	provider, closeWeather := setupWeather(cfg)
	defer closeWeather()

	fishermenRepo := repository.NewFishermanRepository(db)
	trackingRepo := repository.NewTrackingRepository(db)
	driftRepo := repository.NewDriftRepository(db)

	engine := drift.NewEngine()
	engine.HourlyCentroids = cfg.HourlyCentroids

	fishermen := service.NewFishermanService(fishermenRepo, trackingRepo, driftRepo, cfg.StateCacheSize, cfg.StateCacheTTL)
	tracking := service.NewTrackingService(trackingRepo, fishermenRepo, fishermen)
	driftSvc := service.NewDriftService(driftRepo, fishermenRepo, trackingRepo, provider, engine,
		service.DriftDefaults{NumPaths: cfg.DefaultNumPaths, SimulationHours: cfg.DefaultSimHours}, fishermen)

	sweeper := watch.NewSweeper(tracking, driftSvc, watch.Options{
		StaleAfter:  cfg.StaleAfter,
		Interval:    cfg.SweepInterval,
		Concurrency: cfg.SweepConcurrency,
	})
	go sweeper.Run(ctx)

	// 初始化路由
	router := api.SetupRouter(ctx, cfg, api.Services{
		Fishermen: fishermen,
		Tracking:  tracking,
		Drift:     driftSvc,
		Weather:   provider,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 启动服务器
	log.Printf("Server starting on port %s (weather: %s)", cfg.Port, provider.Name())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server: ", err)
	}
	log.Println("Server stopped")
}

// setupWeather builds the provider chain: cache, then Open-Meteo unless
// offline, then the synthesized fallback
func setupWeather(cfg *config.Config) (weather.Provider, func()) {
	var live weather.Provider
	if !cfg.WeatherOffline {
		live = weather.NewOpenMeteoProvider(cfg.WeatherAPIURL, cfg.MarineAPIURL, cfg.WeatherTimeout)
	}

	if cfg.RedisAddr != "" {
		cache, err := weather.NewRedisCache(cfg.RedisAddr, cfg.WeatherCacheTTL, cfg.WeatherCacheRadiusDeg)
		if err == nil {
			log.Printf("[Weather] Using Redis cache at %s", cfg.RedisAddr)
			return weather.NewCachedProvider(live, weather.NewFallbackProvider(), cache), func() { cache.Close() }
		}
		log.Printf("[Weather] Redis unavailable, using in-memory cache: %v", err)
	}

	cache := weather.NewMemoryCache(cfg.WeatherCacheSize, cfg.WeatherCacheTTL, cfg.WeatherCacheRadiusDeg)
	return weather.NewCachedProvider(live, weather.NewFallbackProvider(), cache), func() {}
}
