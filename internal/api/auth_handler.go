package api

import (
	"net/http"

	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login initiates the OAuth flow and returns the provider authorization URL
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	response, err := h.authService.InitiateLogin(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, CreateErrorResponse(
			"LOGIN_FAILED", "Failed to initiate login", err.Error(), getTraceID(c)))
		return
	}

	// State lives in an HTTP-only cookie until the provider redirects back
	c.SetCookie("oauth_state", response.State, 600, "/", "", false, true)

	c.JSON(http.StatusOK, CreateSuccessResponse(response, getTraceID(c)))
}

// Callback exchanges the provider code for a token pair
func (h *AuthHandler) Callback(c *gin.Context) {
	var req services.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	expectedState, err := c.Cookie("oauth_state")
	if err != nil {
		c.JSON(http.StatusBadRequest, CreateErrorResponse(
			"INVALID_STATE", "Missing or invalid state parameter",
			"OAuth state not found in session", getTraceID(c)))
		return
	}

	// One-shot state
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	response, err := h.authService.HandleCallback(c.Request.Context(), &req, expectedState)
	if err != nil {
		c.JSON(http.StatusUnauthorized, CreateErrorResponse(
			"AUTH_FAILED", "Authentication failed", err.Error(), getTraceID(c)))
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(response, getTraceID(c)))
}

// Refresh exchanges a refresh token for a fresh access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	response, err := h.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, CreateErrorResponse(
			"REFRESH_FAILED", "Failed to refresh token", err.Error(), getTraceID(c)))
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(response, getTraceID(c)))
}

// Logout invalidates the session for the authenticated user
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "LOGOUT_FAILED", "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{"logged_out": true}, getTraceID(c)))
}
