package api

import (
	"net/http"

	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CollectionHandler handles trade collection endpoints
type CollectionHandler struct {
	collectionService CollectionServiceInterface
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService CollectionServiceInterface) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

func parseCollectionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid collection ID format")
		return uuid.Nil, false
	}
	return id, true
}

// CreateCollection creates a new collection for the authenticated user
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req models.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	collection, err := h.collectionService.CreateCollection(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "COLLECTION_CREATE_FAILED", "Failed to create collection")
		return
	}

	c.JSON(http.StatusCreated, CreateSuccessResponse(collection, getTraceID(c)))
}

// GetUserCollections lists the user's collections with trade counts
func (h *CollectionHandler) GetUserCollections(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	collections, err := h.collectionService.GetUserCollections(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "COLLECTIONS_GET_FAILED", "Failed to get collections")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(collections, getTraceID(c)))
}

// GetCollection retrieves one collection owned by the user
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	collectionID, ok := parseCollectionID(c)
	if !ok {
		return
	}

	collection, err := h.collectionService.GetCollection(c.Request.Context(), userID, collectionID)
	if err != nil {
		respondServiceError(c, err, "COLLECTION_GET_FAILED", "Failed to get collection")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(collection, getTraceID(c)))
}

// UpdateCollection patches one collection owned by the user
func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	collectionID, ok := parseCollectionID(c)
	if !ok {
		return
	}

	var req models.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	collection, err := h.collectionService.UpdateCollection(c.Request.Context(), userID, collectionID, &req)
	if err != nil {
		respondServiceError(c, err, "COLLECTION_UPDATE_FAILED", "Failed to update collection")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(collection, getTraceID(c)))
}

// DeleteCollection removes one collection; member trades are untouched
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	collectionID, ok := parseCollectionID(c)
	if !ok {
		return
	}

	if err := h.collectionService.DeleteCollection(c.Request.Context(), userID, collectionID); err != nil {
		respondServiceError(c, err, "COLLECTION_DELETE_FAILED", "Failed to delete collection")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{"deleted": true}, getTraceID(c)))
}

// SetCollectionTrades replaces the full trade membership of one collection
func (h *CollectionHandler) SetCollectionTrades(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	collectionID, ok := parseCollectionID(c)
	if !ok {
		return
	}

	var req models.SetCollectionTradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.collectionService.SetCollectionTrades(c.Request.Context(), userID, collectionID, &req); err != nil {
		respondServiceError(c, err, "COLLECTION_SET_TRADES_FAILED", "Failed to set collection trades")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{"updated": true}, getTraceID(c)))
}
