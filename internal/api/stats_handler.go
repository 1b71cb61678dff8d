package api

import (
	"net/http"

	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/models"
	"tradebook-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StatsHandler handles statistics endpoints. Every endpoint accepts the
// same filter object as the trades table, so any filtered view has a
// matching stats view.
type StatsHandler struct {
	statsService StatsServiceInterface
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService StatsServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// StatsRequest carries the filter object of a stats query
type StatsRequest struct {
	Filters models.TradeFilters `json:"filters"`
}

// Summary returns the aggregate block over the filtered set
func (h *StatsHandler) Summary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	stats, err := h.statsService.Summary(c.Request.Context(), userID, req.Filters)
	if err != nil {
		respondServiceError(c, err, "STATS_FAILED", "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(stats, getTraceID(c)))
}

// ByDimension returns per-bucket stats along one dimension
func (h *StatsHandler) ByDimension(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	dimension := c.Param("dimension")
	if !services.IsValidDimension(dimension) {
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"UNKNOWN_DIMENSION", "Unknown breakdown dimension", dimension, getTraceID(c)))
		return
	}

	var req StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	stats, err := h.statsService.ByDimension(c.Request.Context(), userID, dimension, req.Filters)
	if err != nil {
		respondServiceError(c, err, "STATS_FAILED", "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(stats, getTraceID(c)))
}

// Daily returns calendar-day buckets over ?dateField= (tradeDate by
// default)
func (h *StatsHandler) Daily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	stats, err := h.statsService.Daily(c.Request.Context(), userID, c.Query("dateField"), req.Filters)
	if err != nil {
		respondServiceError(c, err, "STATS_FAILED", "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(stats, getTraceID(c)))
}
