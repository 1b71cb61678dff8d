package mocks

import (
	"context"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTradeRepository is a mock implementation of TradeRepository
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) Create(ctx context.Context, trade *models.Trade, entryTypeIDs, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, trade, entryTypeIDs, tagIDs)
	return args.Error(0)
}

func (m *MockTradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trade), args.Error(1)
}

func (m *MockTradeRepository) Update(ctx context.Context, trade *models.Trade, entryTypeIDs, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, trade, entryTypeIDs, tagIDs)
	return args.Error(0)
}

func (m *MockTradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTradeRepository) Query(ctx context.Context, ownerID uuid.UUID, req models.DataTableRequest) ([]*models.Trade, int64, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Trade), args.Get(1).(int64), args.Error(2)
}

func (m *MockTradeRepository) Export(ctx context.Context, ownerID uuid.UUID, filters models.TradeFilters, sort []models.SortSpec) ([]*models.Trade, error) {
	args := m.Called(ctx, ownerID, filters, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trade), args.Error(1)
}

func (m *MockTradeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockOptionRepository is a mock implementation of OptionRepository
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) List(ctx context.Context, kind models.OptionKind, userID *uuid.UUID, activeOnly bool) ([]models.OptionItem, error) {
	args := m.Called(ctx, kind, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OptionItem), args.Error(1)
}

func (m *MockOptionRepository) GetByID(ctx context.Context, kind models.OptionKind, id uuid.UUID) (*models.OptionItem, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OptionItem), args.Error(1)
}

func (m *MockOptionRepository) GetByName(ctx context.Context, kind models.OptionKind, name string, userID *uuid.UUID) (*models.OptionItem, error) {
	args := m.Called(ctx, kind, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OptionItem), args.Error(1)
}

func (m *MockOptionRepository) Create(ctx context.Context, kind models.OptionKind, item *models.OptionItem, userID *uuid.UUID) error {
	args := m.Called(ctx, kind, item, userID)
	return args.Error(0)
}

func (m *MockOptionRepository) Update(ctx context.Context, kind models.OptionKind, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, kind, id, updates)
	return args.Error(0)
}

func (m *MockOptionRepository) Delete(ctx context.Context, kind models.OptionKind, id uuid.UUID) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockOptionRepository) Reorder(ctx context.Context, kind models.OptionKind, items []models.ReorderItem) error {
	args := m.Called(ctx, kind, items)
	return args.Error(0)
}

func (m *MockOptionRepository) UsageCount(ctx context.Context, kind models.OptionKind, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOptionRepository) MaxDisplayOrder(ctx context.Context, kind models.OptionKind, userID *uuid.UUID) (int, error) {
	args := m.Called(ctx, kind, userID)
	return args.Int(0), args.Error(1)
}

// MockCollectionRepository is a mock implementation of CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Collection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) TradeCounts(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockCollectionRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollectionRepository) SetTrades(ctx context.Context, collectionID uuid.UUID, tradeIDs []uuid.UUID) error {
	args := m.Called(ctx, collectionID, tradeIDs)
	return args.Error(0)
}

func (m *MockCollectionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPreferenceRepository is a mock implementation of PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Get(ctx context.Context, userID uuid.UUID, prefType string) (*models.UserPreference, error) {
	args := m.Called(ctx, userID, prefType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreference), args.Error(1)
}

func (m *MockPreferenceRepository) Upsert(ctx context.Context, pref *models.UserPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}
