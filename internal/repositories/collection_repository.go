package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository instance
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	if err := r.db.WithContext(ctx).Create(collection).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrCollectionNameExists
		}
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

func (r *collectionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Collection, error) {
	var collections []*models.Collection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get collections: %w", err)
	}
	return collections, nil
}

// TradeCounts returns the trade membership count per collection for one
// user in a single grouped query.
func (r *collectionRepository) TradeCounts(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int64, error) {
	type countRow struct {
		CollectionID uuid.UUID
		Count        int64
	}

	var rows []countRow
	err := r.db.WithContext(ctx).
		Table("trade_collections").
		Select("trade_collections.collection_id AS collection_id, COUNT(*) AS count").
		Joins("JOIN collections ON collections.id = trade_collections.collection_id").
		Where("collections.user_id = ?", userID).
		Group("trade_collections.collection_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count collection trades: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CollectionID] = row.Count
	}
	return counts, nil
}

func (r *collectionRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&models.Collection{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrCollectionNameExists
		}
		return fmt.Errorf("failed to update collection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// Delete removes the collection and its membership rows. Trades themselves
// are never touched.
func (r *collectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM trade_collections WHERE collection_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to clear collection membership: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Collection{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete collection: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCollectionNotFound
		}
		return nil
	})
}

// SetTrades replaces the collection's membership with exactly the given
// trade set. Clearing and re-inserting in one transaction keeps the
// membership consistent under concurrent readers.
func (r *collectionRepository) SetTrades(ctx context.Context, collectionID uuid.UUID, tradeIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM trade_collections WHERE collection_id = ?", collectionID).Error; err != nil {
			return fmt.Errorf("failed to clear collection membership: %w", err)
		}
		for _, tradeID := range tradeIDs {
			err := tx.Exec(
				"INSERT INTO trade_collections (trade_id, collection_id) VALUES (?, ?)",
				tradeID, collectionID,
			).Error
			if err != nil {
				if isForeignKeyError(err) {
					return fmt.Errorf("%w: trade %s", ErrInvalidInput, tradeID)
				}
				return fmt.Errorf("failed to add trade to collection: %w", err)
			}
		}
		return nil
	})
}

func (r *collectionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Collection{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count collections: %w", err)
	}
	return count, nil
}
