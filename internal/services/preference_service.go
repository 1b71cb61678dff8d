package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PreferenceService stores and retrieves opaque per-user settings blobs
type PreferenceService struct {
	repos *repositories.Repositories
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(repos *repositories.Repositories) *PreferenceService {
	return &PreferenceService{repos: repos}
}

// PreferenceResponse carries one settings blob; Settings is null when the
// user has never saved that type
type PreferenceResponse struct {
	Type     string      `json:"type"`
	Settings models.JSON `json:"settings"`
}

// GetPreference returns the stored blob for one type, or a null settings
// response when none was ever saved
func (s *PreferenceService) GetPreference(ctx context.Context, userID uuid.UUID, prefType string) (*PreferenceResponse, error) {
	if prefType == "" {
		return nil, fmt.Errorf("%w: preference type is required", repositories.ErrInvalidInput)
	}

	pref, err := s.repos.Preference.Get(ctx, userID, prefType)
	if err != nil {
		if errors.Is(err, repositories.ErrPreferenceNotFound) {
			return &PreferenceResponse{Type: prefType, Settings: nil}, nil
		}
		return nil, err
	}

	var settings models.JSON
	if len(pref.Settings) > 0 {
		if err := json.Unmarshal(pref.Settings, &settings); err != nil {
			return nil, fmt.Errorf("failed to decode stored settings: %w", err)
		}
	}
	return &PreferenceResponse{Type: prefType, Settings: settings}, nil
}

// SavePreference upserts the blob for (user, type), replacing any prior
// value entirely. Last write wins.
func (s *PreferenceService) SavePreference(ctx context.Context, userID uuid.UUID, req *models.SavePreferenceRequest) (*PreferenceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}

	raw, err := json.Marshal(req.Settings)
	if err != nil {
		return nil, fmt.Errorf("%w: settings are not valid JSON", repositories.ErrInvalidInput)
	}

	pref := &models.UserPreference{
		UserID:   userID,
		Type:     req.Type,
		Settings: datatypes.JSON(raw),
	}
	if err := s.repos.Preference.Upsert(ctx, pref); err != nil {
		return nil, err
	}
	return &PreferenceResponse{Type: req.Type, Settings: req.Settings}, nil
}
