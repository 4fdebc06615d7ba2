// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artisan_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	RecommendationsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artisan_recommendations_served_total",
		Help: "Recommendations returned, by pool.",
	}, []string{"pool"})

	AnalysisOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artisan_image_analysis_total",
		Help: "Image analysis calls by outcome (ok, partial, repaired, unavailable, rejected, timeout, canceled, error).",
	}, []string{"outcome"})

	StoriesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artisan_stories_generated_total",
		Help: "Story generation calls by outcome (ok, repaired, failed, unavailable, rejected, timeout, canceled, error).",
	}, []string{"outcome"})

	ProfilesStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "artisan_profiles_stored",
		Help: "Profiles currently held by the profile store.",
	})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "artisan_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
	}, []string{"name"})

	CircuitBreakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artisan_circuit_breaker_transitions_total",
		Help: "Circuit breaker state transitions.",
	}, []string{"name", "from", "to"})
)

// Middleware counts requests by matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
