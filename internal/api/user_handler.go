package api

import (
	"net/http"

	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrentUser returns the authenticated user's profile
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	user, err := h.userService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "USER_GET_FAILED", "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(user, getTraceID(c)))
}

// UpdateCurrentUser patches the authenticated user's profile
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateCurrentUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "USER_UPDATE_FAILED", "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(user, getTraceID(c)))
}
