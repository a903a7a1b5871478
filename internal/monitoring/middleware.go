package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// MonitoringMiddleware creates Gin middleware for request monitoring
func MonitoringMiddleware(metrics *Metrics, logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ip := c.ClientIP()
		userAgent := c.GetHeader("User-Agent")
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		// Unmatched routes share one label to keep cardinality bounded.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(method, route, statusCode, duration)

		logger.RequestLogger(method, path, ip, userAgent, statusCode, duration)

		for _, err := range c.Errors {
			logger.APIErrorLogger(err.Err, method, path, ip, statusCode)
		}

		if statusCode >= 500 {
			logger.SystemLogger("server_error", fmt.Sprintf("Status %d for %s %s", statusCode, method, path))
		}
	}
}

// HealthCheck reports on one dependency. An error marks the service degraded.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) (interface{}, error)
}

// HealthHandler reports liveness with a metrics snapshot and the result of
// every check. Any failing check answers 503 with status "degraded".
func HealthHandler(metrics *Metrics, version string, checks ...HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		results := make(map[string]interface{}, len(checks))
		for _, check := range checks {
			result, err := check.Check(c.Request.Context())
			if err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
				results[check.Name] = gin.H{"error": err.Error()}
				continue
			}
			results[check.Name] = result
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"metrics":   metrics.GetStats(),
			"checks":    results,
		})
	}
}
