package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository instance
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, userID uuid.UUID, prefType string) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, prefType).
		First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return &pref, nil
}

// Upsert writes the settings blob, replacing any prior value for the same
// (user, type) pair. Last write wins.
func (r *preferenceRepository) Upsert(ctx context.Context, pref *models.UserPreference) error {
	pref.UpdatedAt = time.Now().UTC()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}
