package api

import (
	"net/http"

	"tradebook-backend/internal/middleware"
	"tradebook-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler handles per-user settings blob endpoints
type PreferenceHandler struct {
	preferenceService PreferenceServiceInterface
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferenceService PreferenceServiceInterface) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// GetPreference returns the stored blob for ?type=; settings is null when
// nothing was ever saved under that key
func (h *PreferenceHandler) GetPreference(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	prefType := c.Query("type")
	pref, err := h.preferenceService.GetPreference(c.Request.Context(), userID, prefType)
	if err != nil {
		respondServiceError(c, err, "PREFERENCE_GET_FAILED", "Failed to get preference")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(pref, getTraceID(c)))
}

// SavePreference upserts one blob keyed by (user, type), replacing any
// prior value entirely
func (h *PreferenceHandler) SavePreference(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		respondAuthRequired(c)
		return
	}

	var req models.SavePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	pref, err := h.preferenceService.SavePreference(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "PREFERENCE_SAVE_FAILED", "Failed to save preference")
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(pref, getTraceID(c)))
}
