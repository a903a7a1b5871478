// Package api exposes the assessment services over HTTP.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ZanzyTHEbar/function-o-meter/docs"
	"github.com/ZanzyTHEbar/function-o-meter/internal/assessment"
	"github.com/ZanzyTHEbar/function-o-meter/internal/cache"
	"github.com/ZanzyTHEbar/function-o-meter/internal/distribution"
	"github.com/ZanzyTHEbar/function-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/function-o-meter/internal/monitoring"
	"github.com/ZanzyTHEbar/function-o-meter/internal/security"
	"github.com/ZanzyTHEbar/function-o-meter/internal/types"
)

// SampleRoute is served from the response cache; a selection depends only
// on the decoded request.
const SampleRoute = "/api/v1/sample"

// sampleKey keys a selection on mode, seed and explicit ids. Bodies that do
// not bind skip the cache and reach the handler's validation.
func sampleKey(body []byte) (string, bool) {
	var req types.SampleRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return "", false
	}
	parts := append([]string{strconv.Itoa(req.Mode), req.Seed}, req.ExplicitIDs...)
	return cache.Key(parts...), true
}

// Options wires the router.
type Options struct {
	Assessment    *assessment.Service
	Distribution  *distribution.Service
	Cache         *cache.Cache
	Metrics       *monitoring.Metrics
	Logger        *monitoring.Logger
	Version       string
	CORSOrigins   []string
	EnableSwagger bool
	EnableHSTS    bool
	HealthChecks  []monitoring.HealthCheck

	// MaxBodyBytes defaults to security.DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Cache", monitoring.RequestIDHeader}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = security.DefaultMaxBodyBytes
	}

	r.Use(monitoring.RequestIDMiddleware())
	r.Use(errors.RecoveryHandler())
	r.Use(monitoring.MonitoringMiddleware(opts.Metrics, opts.Logger))
	r.Use(security.HeadersMiddleware(security.HeadersConfig{HSTS: opts.EnableHSTS}))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(errors.ErrorHandler())
	r.Use(opts.Cache.Middleware(opts.Metrics, opts.Logger, map[string]cache.KeyFunc{SampleRoute: sampleKey}))

	r.GET("/health", monitoring.HealthHandler(opts.Metrics, opts.Version, opts.HealthChecks...))
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := NewHandler(opts.Assessment, opts.Distribution)

	v1 := r.Group("/api/v1", security.RequireJSON(), security.BodyLimit(maxBody))
	{
		v1.POST("/sample", h.Sample)
		v1.POST("/score", h.Score)
		v1.POST("/derive", h.Derive)
		v1.POST("/analyze", h.Analyze)
		v1.GET("/scenarios/:id", h.GetScenario)
		v1.GET("/personas", h.ListPersonas)
		v1.POST("/simulations", h.Simulate)
		v1.POST("/simulations/batch", h.SimulateBatch)
		v1.GET("/stats/types", h.TypeStats)
	}

	runs := v1.Group("/runs")
	{
		runs.POST("", h.CreateRun)
		runs.GET("", h.ListRuns)
		runs.GET("/:id", h.GetRun)
		runs.DELETE("/:id", h.DeleteRun)
		runs.POST("/:id/responses", h.SubmitResponses)
	}

	v1.GET("/stats/cache", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"responses":    opts.Cache.Stats(),
			"distribution": opts.Distribution.GetCacheStats(),
		})
	})
	v1.GET("/stats/collectors", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"collectors": opts.Assessment.CollectorStats()})
	})

	return r
}
