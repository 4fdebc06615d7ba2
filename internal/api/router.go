// Package api exposes the strategist over REST.
package api

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/metrics"
	"github.com/BerylCAtieno/artisan-content-agent/internal/strategist"
)

// Options configures the router. Zero values fall back to sane defaults.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	CalendarDays   int
}

// Agent is the A2A surface mounted next to the REST routes.
type Agent interface {
	ServeAgentCard(c *gin.Context)
	HandleStrategist(c *gin.Context)
}

func NewRouter(svc *strategist.Service, agent Agent, opts Options) *gin.Engine {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.CalendarDays <= 0 {
		opts.CalendarDays = 30
	}
	opts.CalendarDays = min(opts.CalendarDays, svc.MaxCalendarDays())

	router := gin.New()
	router.MaxMultipartMemory = opts.MaxUploadBytes
	router.Use(gin.Recovery())
	router.Use(logging.RequestLogger())
	router.Use(metrics.Middleware())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	h := NewHandler(svc, opts)

	router.GET("/health", h.Health)
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")
	api.GET("/craft-types", h.CraftTypes)
	api.GET("/statistics", h.Statistics)

	profiles := api.Group("/profiles")
	profiles.POST("", h.CreateProfile)
	profiles.GET("", h.ListProfiles)
	profiles.GET("/export", h.ExportProfiles)
	profiles.GET("/:id", h.GetProfile)
	profiles.PUT("/:id", h.UpdateProfile)
	profiles.DELETE("/:id", h.DeleteProfile)
	profiles.POST("/:id/analyze-image", h.AnalyzeImage)
	profiles.GET("/:id/recommendations", h.Recommendations)
	profiles.GET("/:id/specialized-recommendations", h.Specialized)
	profiles.GET("/:id/seasonal-recommendations", h.Seasonal)
	profiles.GET("/:id/technique-recommendations", h.Technique)
	profiles.GET("/:id/market-recommendations", h.Market)
	profiles.GET("/:id/calendar", h.Calendar)
	profiles.GET("/:id/strategy", h.Strategy)
	profiles.GET("/:id/story", h.Story)
	profiles.GET("/:id/story-chain", h.StoryChain)

	if agent != nil {
		router.GET("/.well-known/agent.json", agent.ServeAgentCard)
		router.POST("/a2a/strategist", agent.HandleStrategist)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
