package api

import (
	"net/http"

	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OptionHandler handles reference-data endpoints across the closed set of
// option kinds
type OptionHandler struct {
	optionService OptionServiceInterface
}

// NewOptionHandler creates a new option handler
func NewOptionHandler(optionService OptionServiceInterface) *OptionHandler {
	return &OptionHandler{optionService: optionService}
}

// parseKind validates the kind path segment against the closed enum. The
// raw string never travels further than this function.
func parseKind(c *gin.Context) (models.OptionKind, bool) {
	kind, err := models.ParseOptionKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"UNKNOWN_OPTION_KIND", "Unknown option kind", c.Param("kind"), getTraceID(c)))
		return "", false
	}
	return kind, true
}

// ListOptions lists entries of one kind; ?active=true narrows to the
// picker view
func (h *OptionHandler) ListOptions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	kind, ok := parseKind(c)
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"
	items, err := h.optionService.ListOptions(c.Request.Context(), kind, userID, activeOnly)
	if err != nil {
		respondServiceError(c, err, "OPTIONS_LIST_FAILED", "Failed to list options")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(items, getTraceID(c)))
}

// CreateOption adds a new entry to one kind
func (h *OptionHandler) CreateOption(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	kind, ok := parseKind(c)
	if !ok {
		return
	}

	var req models.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	item, err := h.optionService.CreateOption(c.Request.Context(), kind, userID, &req)
	if err != nil {
		respondServiceError(c, err, "OPTION_CREATE_FAILED", "Failed to create option")
		return
	}

	c.JSON(http.StatusCreated, CreateSuccessResponse(item, getTraceID(c)))
}

// UpdateOption patches one entry
func (h *OptionHandler) UpdateOption(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	kind, ok := parseKind(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid option ID format")
		return
	}

	var req models.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	item, err := h.optionService.UpdateOption(c.Request.Context(), kind, userID, id, &req)
	if err != nil {
		respondServiceError(c, err, "OPTION_UPDATE_FAILED", "Failed to update option")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(item, getTraceID(c)))
}

// DeleteOption removes one entry unless trades still reference it
func (h *OptionHandler) DeleteOption(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	kind, ok := parseKind(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid option ID format")
		return
	}

	if err := h.optionService.DeleteOption(c.Request.Context(), kind, userID, id); err != nil {
		respondServiceError(c, err, "OPTION_DELETE_FAILED", "Failed to delete option")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{"deleted": true}, getTraceID(c)))
}

// ReorderOptions applies a batch of display-order changes all-or-nothing
func (h *OptionHandler) ReorderOptions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	kind, ok := parseKind(c)
	if !ok {
		return
	}

	var req models.ReorderOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.optionService.ReorderOptions(c.Request.Context(), kind, userID, &req); err != nil {
		respondServiceError(c, err, "OPTION_REORDER_FAILED", "Failed to reorder options")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{"reordered": true}, getTraceID(c)))
}

// UsageCheck reports how many trades reference an entry, for the
// pre-delete confirmation dialog. Unknown kinds are a client error.
func (h *OptionHandler) UsageCheck(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		respondAuthRequired(c)
		return
	}

	kind, err := models.ParseOptionKind(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"UNKNOWN_OPTION_KIND", "Unknown option kind", c.Query("type"), getTraceID(c)))
		return
	}

	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		respondBadRequest(c, "invalid option ID format")
		return
	}

	count, err := h.optionService.UsageCount(c.Request.Context(), kind, id)
	if err != nil {
		respondServiceError(c, err, "OPTION_USAGE_FAILED", "Failed to check option usage")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{"count": count}, getTraceID(c)))
}
