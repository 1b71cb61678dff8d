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

// optionKindDescriptor binds one reference-data kind to its table and its
// reference-count query. The descriptor set is closed; kind strings from
// clients never address tables directly.
type optionKindDescriptor struct {
	table string

	// usage builds the query counting rows that still reference the entry
	usage func(db *gorm.DB, id uuid.UUID) *gorm.DB
}

var optionKindDescriptors = map[models.OptionKind]optionKindDescriptor{
	models.OptionKindCommodity: {
		table: "commodities",
		usage: func(db *gorm.DB, id uuid.UUID) *gorm.DB {
			return db.Model(&models.Trade{}).Where("commodity_id = ?", id)
		},
	},
	models.OptionKindTimeframe: {
		table: "timeframes",
		usage: func(db *gorm.DB, id uuid.UUID) *gorm.DB {
			return db.Model(&models.Trade{}).Where("timeframe_id = ?", id)
		},
	},
	models.OptionKindTradeType: {
		table: "trade_types",
		usage: func(db *gorm.DB, id uuid.UUID) *gorm.DB {
			return db.Model(&models.Trade{}).Where("trade_type_id = ?", id)
		},
	},
	models.OptionKindTrendlineType: {
		table: "trendline_types",
		usage: func(db *gorm.DB, id uuid.UUID) *gorm.DB {
			return db.Model(&models.Trade{}).Where("trendline_type_id = ?", id)
		},
	},
	models.OptionKindEntryType: {
		table: "entry_types",
		usage: func(db *gorm.DB, id uuid.UUID) *gorm.DB {
			return db.Table("trade_entry_types").Where("entry_type_id = ?", id)
		},
	},
	models.OptionKindTag: {
		table: "trading_tags",
		usage: func(db *gorm.DB, id uuid.UUID) *gorm.DB {
			return db.Table("trade_tags").Where("trading_tag_id = ?", id)
		},
	},
}

func descriptorFor(kind models.OptionKind) (optionKindDescriptor, error) {
	d, ok := optionKindDescriptors[kind]
	if !ok {
		return optionKindDescriptor{}, models.ErrUnknownOptionKind
	}
	return d, nil
}

type optionRepository struct {
	db *gorm.DB
}

// NewOptionRepository creates a new option repository instance
func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) List(ctx context.Context, kind models.OptionKind, userID *uuid.UUID, activeOnly bool) ([]models.OptionItem, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Table(d.table)
	if kind.IsPerUser() && userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var items []models.OptionItem
	err = query.Order("display_order ASC").Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.table, err)
	}
	return items, nil
}

func (r *optionRepository) GetByID(ctx context.Context, kind models.OptionKind, id uuid.UUID) (*models.OptionItem, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	var item models.OptionItem
	err = r.db.WithContext(ctx).Table(d.table).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s entry: %w", d.table, err)
	}
	return &item, nil
}

func (r *optionRepository) GetByName(ctx context.Context, kind models.OptionKind, name string, userID *uuid.UUID) (*models.OptionItem, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Table(d.table).Where("name = ?", name)
	if kind.IsPerUser() && userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var item models.OptionItem
	err = query.First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s entry by name: %w", d.table, err)
	}
	return &item, nil
}

func (r *optionRepository) Create(ctx context.Context, kind models.OptionKind, item *models.OptionItem, userID *uuid.UUID) error {
	d, err := descriptorFor(kind)
	if err != nil {
		return err
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	row := map[string]interface{}{
		"id":            item.ID,
		"name":          item.Name,
		"display_order": item.DisplayOrder,
		"is_active":     item.IsActive,
		"created_at":    item.CreatedAt,
		"updated_at":    item.UpdatedAt,
	}
	if kind.IsPerUser() {
		row["user_id"] = userID
	}

	if err := r.db.WithContext(ctx).Table(d.table).Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrOptionNameExists
		}
		return fmt.Errorf("failed to create %s entry: %w", d.table, err)
	}
	return nil
}

func (r *optionRepository) Update(ctx context.Context, kind models.OptionKind, id uuid.UUID, updates map[string]interface{}) error {
	d, err := descriptorFor(kind)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Table(d.table).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrOptionNameExists
		}
		return fmt.Errorf("failed to update %s entry: %w", d.table, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOptionNotFound
	}
	return nil
}

// Delete refuses to remove an entry that is still referenced. The count
// runs inside the delete transaction so a client-side pre-check can never
// be the only line of defense.
func (r *optionRepository) Delete(ctx context.Context, kind models.OptionKind, id uuid.UUID) error {
	d, err := descriptorFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := d.usage(tx, id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count %s references: %w", d.table, err)
		}
		if refs > 0 {
			return ErrOptionInUse
		}

		result := tx.Table(d.table).Where("id = ?", id).Delete(nil)
		if result.Error != nil {
			if isForeignKeyError(result.Error) {
				return ErrOptionInUse
			}
			return fmt.Errorf("failed to delete %s entry: %w", d.table, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrOptionNotFound
		}
		return nil
	})
}

// Reorder applies every display-order update or none: one missing id rolls
// the whole batch back, so the sequence is never half old, half new.
func (r *optionRepository) Reorder(ctx context.Context, kind models.OptionKind, items []models.ReorderItem) error {
	d, err := descriptorFor(kind)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Table(d.table).Where("id = ?", item.ID).Updates(map[string]interface{}{
				"display_order": item.DisplayOrder,
				"updated_at":    now,
			})
			if result.Error != nil {
				return fmt.Errorf("failed to reorder %s entry: %w", d.table, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrOptionNotFound, item.ID)
			}
		}
		return nil
	})
}

func (r *optionRepository) UsageCount(ctx context.Context, kind models.OptionKind, id uuid.UUID) (int64, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := d.usage(r.db.WithContext(ctx), id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s references: %w", d.table, err)
	}
	return count, nil
}

func (r *optionRepository) MaxDisplayOrder(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) (int, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return 0, err
	}

	query := r.db.WithContext(ctx).Table(d.table)
	if kind.IsPerUser() && userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var max *int
	if err := query.Select("MAX(display_order)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("failed to get max display order for %s: %w", d.table, err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
