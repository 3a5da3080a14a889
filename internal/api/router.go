package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seaguard/driftwatch/internal/config"
	"github.com/seaguard/driftwatch/internal/handler"
	"github.com/seaguard/driftwatch/internal/middleware"
	"github.com/seaguard/driftwatch/internal/service"
	"github.com/seaguard/driftwatch/internal/weather"
)

// Services are the dependencies the HTTP layer is built on
type Services struct {
	Fishermen *service.FishermanService
	Tracking  *service.TrackingService
	Drift     *service.DriftService
	Weather   weather.Provider
}

// SetupRouter 设置路由. ctx bounds background work owned by the router.
func SetupRouter(ctx context.Context, cfg *config.Config, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Driftwatch API is running",
		})
	})

	fishermen := handler.NewFishermanHandler(svc.Fishermen, svc.Tracking)
	tracking := handler.NewTrackingHandler(svc.Tracking)
	drift := handler.NewDriftHandler(svc.Drift)
	wx := handler.NewWeatherHandler(svc.Weather)

	// API 路由组
	api := r.Group("/api/v1")
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimit(middleware.NewRateLimiter(ctx, cfg.RateLimit, cfg.RateWindow)))
	}
	{
		f := api.Group("/fishermen")
		{
			f.POST("", fishermen.Create)
			f.GET("", fishermen.List)
			f.GET("/:id", fishermen.Get)
			f.GET("/:id/state", fishermen.State)
			f.POST("/:id/sessions", fishermen.StartSession)
			f.GET("/:id/positions/latest", fishermen.LatestPosition)
			f.POST("/:id/drift", drift.Simulate)
			f.GET("/:id/drift/latest", drift.Latest)
			f.GET("/:id/drift/latest/geojson", drift.LatestGeoJSON)
		}

		s := api.Group("/sessions/:sessionId")
		{
			s.POST("/stop", tracking.StopSession)
			s.POST("/positions", tracking.ReportPosition)
			s.GET("/positions", tracking.ListReports)
			s.GET("/drift", drift.SessionHistory)
		}

		api.GET("/drift/:simId", drift.Get)
		api.GET("/weather", wx.Get)
	}

	return r
}
