package api

import (
	"net/http"

	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TradeHandler handles trade journal endpoints
type TradeHandler struct {
	tradeService TradeServiceInterface
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(tradeService TradeServiceInterface) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// CreateTrade logs a new trade for the authenticated user
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req models.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "TRADE_CREATE_FAILED", "Failed to create trade")
		return
	}

	c.JSON(http.StatusCreated, CreateSuccessResponse(trade, getTraceID(c)))
}

// GetTrade retrieves one trade owned by the authenticated user
func (h *TradeHandler) GetTrade(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid trade ID format")
		return
	}

	trade, err := h.tradeService.GetTrade(c.Request.Context(), userID, tradeID)
	if err != nil {
		respondServiceError(c, err, "TRADE_GET_FAILED", "Failed to get trade")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(trade, getTraceID(c)))
}

// UpdateTrade patches one trade owned by the authenticated user
func (h *TradeHandler) UpdateTrade(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid trade ID format")
		return
	}

	var req models.UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.UpdateTrade(c.Request.Context(), userID, tradeID, &req)
	if err != nil {
		respondServiceError(c, err, "TRADE_UPDATE_FAILED", "Failed to update trade")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(trade, getTraceID(c)))
}

// DeleteTrade removes one trade owned by the authenticated user
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid trade ID format")
		return
	}

	if err := h.tradeService.DeleteTrade(c.Request.Context(), userID, tradeID); err != nil {
		respondServiceError(c, err, "TRADE_DELETE_FAILED", "Failed to delete trade")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{"deleted": true}, getTraceID(c)))
}

// ToggleFavorite flips the favorite flag on one trade
func (h *TradeHandler) ToggleFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid trade ID format")
		return
	}

	trade, err := h.tradeService.ToggleFavorite(c.Request.Context(), userID, tradeID)
	if err != nil {
		respondServiceError(c, err, "TRADE_UPDATE_FAILED", "Failed to toggle favorite")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(trade, getTraceID(c)))
}

// QueryTrades runs one DataTable request: filtered, sorted, paginated,
// with the pagination meta block alongside the page
func (h *TradeHandler) QueryTrades(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req models.DataTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	trades, meta, err := h.tradeService.QueryTrades(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "TRADE_QUERY_FAILED", "Failed to query trades")
		return
	}

	c.JSON(http.StatusOK, CreateDataTableResponse(trades, meta, getTraceID(c)))
}

// ExportRequest carries the filter and sort of an unpaginated export
type ExportRequest struct {
	Filters models.TradeFilters `json:"filters"`
	Sort    []models.SortSpec   `json:"sort"`
}

// ExportTrades returns the full filtered set without pagination, bounded
// by the export row cap
func (h *TradeHandler) ExportTrades(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	trades, err := h.tradeService.ExportTrades(c.Request.Context(), userID, req.Filters, req.Sort)
	if err != nil {
		respondServiceError(c, err, "TRADE_EXPORT_FAILED", "Failed to export trades")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(trades, getTraceID(c)))
}
