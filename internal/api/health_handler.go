package api

import (
	"net/http"
	"time"

	"tradebook-backend/internal/database"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// LivenessProbe reports that the process is running
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, CreateSuccessResponse(HealthCheckResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, getTraceID(c)))
}

// ReadinessProbe reports whether the service can serve traffic. The
// database is the only hard dependency; cache and events degrade
// gracefully when absent.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	checks := map[string]string{"database": "ok"}
	status := "ready"
	httpStatus := http.StatusOK

	if h.db == nil {
		checks["database"] = "not configured"
		status = "unready"
		httpStatus = http.StatusServiceUnavailable
	} else if err := h.db.HealthCheck(); err != nil {
		checks["database"] = err.Error()
		status = "unready"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthCheckResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if httpStatus != http.StatusOK {
		c.JSON(httpStatus, CreateErrorResponse(
			"SERVICE_UNAVAILABLE", "Service is not ready", checks["database"], getTraceID(c)))
		return
	}

	c.JSON(httpStatus, CreateSuccessResponse(response, getTraceID(c)))
}
