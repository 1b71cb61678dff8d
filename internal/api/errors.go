package api

import (
	"errors"
	"net/http"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer sentinel errors onto the HTTP
// error taxonomy. Anything unmapped falls through to a generic 500 that
// never leaks internals beyond the details string.
func respondServiceError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	traceID := getTraceID(c)

	switch {
	case errors.Is(err, repositories.ErrTradeNotFound):
		c.JSON(http.StatusNotFound, CreateErrorResponse(
			"TRADE_NOT_FOUND", "Trade not found", "", traceID))
	case errors.Is(err, repositories.ErrCollectionNotFound):
		c.JSON(http.StatusNotFound, CreateErrorResponse(
			"COLLECTION_NOT_FOUND", "Collection not found", "", traceID))
	case errors.Is(err, repositories.ErrOptionNotFound):
		c.JSON(http.StatusNotFound, CreateErrorResponse(
			"OPTION_NOT_FOUND", "Option not found", "", traceID))
	case errors.Is(err, repositories.ErrUserNotFound):
		c.JSON(http.StatusNotFound, CreateErrorResponse(
			"USER_NOT_FOUND", "User not found", "", traceID))
	case errors.Is(err, repositories.ErrOptionNameExists):
		c.JSON(http.StatusConflict, CreateErrorResponse(
			"CONFLICT", "An option with this name already exists", "", traceID))
	case errors.Is(err, repositories.ErrCollectionNameExists):
		c.JSON(http.StatusConflict, CreateErrorResponse(
			"CONFLICT", "A collection with this name already exists", "", traceID))
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, CreateErrorResponse(
			"CONFLICT", "Username or email already taken", "", traceID))
	case errors.Is(err, repositories.ErrOptionInUse):
		c.JSON(http.StatusConflict, CreateErrorResponse(
			"REFERENCE_CONFLICT", "Option is still referenced by trades", "", traceID))
	case errors.Is(err, repositories.ErrInvalidSortField):
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"INVALID_SORT_FIELD", "One or more sort fields are not sortable", err.Error(), traceID))
	case errors.Is(err, repositories.ErrInvalidFilterValue):
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"INVALID_FILTER", "One or more filter values are malformed", err.Error(), traceID))
	case errors.Is(err, repositories.ErrInvalidTrade):
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"INVALID_REFERENCE", "A referenced option does not exist", err.Error(), traceID))
	case errors.Is(err, repositories.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"VALIDATION_ERROR", "Request validation failed", err.Error(), traceID))
	case errors.Is(err, models.ErrUnknownOptionKind):
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"UNKNOWN_OPTION_KIND", "Unknown option kind", err.Error(), traceID))
	default:
		c.JSON(http.StatusInternalServerError, CreateErrorResponse(
			fallbackCode, fallbackMessage, err.Error(), traceID))
	}
}

// respondAuthRequired writes the standard 401 envelope
func respondAuthRequired(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, CreateErrorResponse(
		"AUTH_REQUIRED", "Authentication required", "", getTraceID(c)))
}

// respondBadRequest writes a 400 envelope for binding failures
func respondBadRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, CreateErrorResponse(
		"INVALID_REQUEST", "Invalid request format", details, getTraceID(c)))
}
