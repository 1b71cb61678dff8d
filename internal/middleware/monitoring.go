package middleware

import (
	"tradebook-backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MonitoringMiddleware records HTTP request metrics for every route
func MonitoringMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return m.HTTPMetricsMiddleware()
}

// AuthFailureMetricsMiddleware counts authentication and authorization
// failures after the handler chain has run
func AuthFailureMetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if m == nil {
			return
		}
		status := c.Writer.Status()
		if status == 401 {
			m.RecordError("auth", "unauthorized")
		} else if status == 403 {
			m.RecordError("auth", "forbidden")
		}
	}
}
