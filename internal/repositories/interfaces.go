package repositories

import (
	"context"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}

// TradeRepository defines the interface for trade storage and the
// DataTable query engine
type TradeRepository interface {
	// Create stores the trade and its entry-type/tag join rows in one
	// transaction
	Create(ctx context.Context, trade *models.Trade, entryTypeIDs, tagIDs []uuid.UUID) error

	// GetByID loads one trade with its relations; returns nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error)

	// Update saves the trade; a non-nil entryTypeIDs or tagIDs slice
	// replaces that full association set atomically with the row update
	Update(ctx context.Context, trade *models.Trade, entryTypeIDs, tagIDs []uuid.UUID) error

	// Delete removes the trade and cascades its join rows
	Delete(ctx context.Context, id uuid.UUID) error

	// Query runs one DataTable request scoped to the owner: filtered,
	// multi-key sorted, paginated, with the matching total count. The page
	// fetch and the count run concurrently over an identical filter clause.
	Query(ctx context.Context, ownerID uuid.UUID, req models.DataTableRequest) ([]*models.Trade, int64, error)

	// Export fetches the full filtered set without pagination, bounded by
	// models.ExportRowCap
	Export(ctx context.Context, ownerID uuid.UUID, filters models.TradeFilters, sort []models.SortSpec) ([]*models.Trade, error)

	// Count returns the total number of trades across all users
	Count(ctx context.Context) (int64, error)
}

// OptionRepository is the single dispatch surface over the closed set of
// reference-data kinds
type OptionRepository interface {
	List(ctx context.Context, kind models.OptionKind, userID *uuid.UUID, activeOnly bool) ([]models.OptionItem, error)
	GetByID(ctx context.Context, kind models.OptionKind, id uuid.UUID) (*models.OptionItem, error)
	GetByName(ctx context.Context, kind models.OptionKind, name string, userID *uuid.UUID) (*models.OptionItem, error)
	Create(ctx context.Context, kind models.OptionKind, item *models.OptionItem, userID *uuid.UUID) error
	Update(ctx context.Context, kind models.OptionKind, id uuid.UUID, updates map[string]interface{}) error

	// Delete enforces the reference-count guard server-side regardless of
	// any client-side pre-check
	Delete(ctx context.Context, kind models.OptionKind, id uuid.UUID) error

	// Reorder applies all display-order updates in one transaction; any
	// failure leaves every row at its prior value
	Reorder(ctx context.Context, kind models.OptionKind, items []models.ReorderItem) error

	// UsageCount returns how many trades (or join rows) reference the entry
	UsageCount(ctx context.Context, kind models.OptionKind, id uuid.UUID) (int64, error)

	MaxDisplayOrder(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) (int, error)
}

// CollectionRepository defines the interface for collection operations
type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Collection, error)
	TradeCounts(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetTrades replaces the full trade membership in one transaction
	SetTrades(ctx context.Context, collectionID uuid.UUID, tradeIDs []uuid.UUID) error

	Count(ctx context.Context) (int64, error)
}

// PreferenceRepository defines the interface for per-user settings blobs
type PreferenceRepository interface {
	Get(ctx context.Context, userID uuid.UUID, prefType string) (*models.UserPreference, error)
	Upsert(ctx context.Context, pref *models.UserPreference) error
}
