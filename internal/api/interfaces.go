package api

import (
	"context"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/services"

	"github.com/google/uuid"
)

// Service interfaces consumed by the handlers. Handlers depend on these
// rather than the concrete services so tests can substitute mocks.

// TradeServiceInterface defines trade operations used by handlers
type TradeServiceInterface interface {
	CreateTrade(ctx context.Context, userID uuid.UUID, req *models.CreateTradeRequest) (*services.TradeResponse, error)
	GetTrade(ctx context.Context, userID, tradeID uuid.UUID) (*services.TradeResponse, error)
	UpdateTrade(ctx context.Context, userID, tradeID uuid.UUID, req *models.UpdateTradeRequest) (*services.TradeResponse, error)
	DeleteTrade(ctx context.Context, userID, tradeID uuid.UUID) error
	ToggleFavorite(ctx context.Context, userID, tradeID uuid.UUID) (*services.TradeResponse, error)
	QueryTrades(ctx context.Context, userID uuid.UUID, req models.DataTableRequest) ([]*services.TradeResponse, models.PaginationMeta, error)
	ExportTrades(ctx context.Context, userID uuid.UUID, filters models.TradeFilters, sort []models.SortSpec) ([]*services.TradeResponse, error)
}

// OptionServiceInterface defines option registry operations used by handlers
type OptionServiceInterface interface {
	ListOptions(ctx context.Context, kind models.OptionKind, userID uuid.UUID, activeOnly bool) ([]models.OptionItem, error)
	CreateOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, req *models.CreateOptionRequest) (*models.OptionItem, error)
	UpdateOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, id uuid.UUID, req *models.UpdateOptionRequest) (*models.OptionItem, error)
	DeleteOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, id uuid.UUID) error
	ReorderOptions(ctx context.Context, kind models.OptionKind, userID uuid.UUID, req *models.ReorderOptionsRequest) error
	UsageCount(ctx context.Context, kind models.OptionKind, id uuid.UUID) (int64, error)
}

// CollectionServiceInterface defines collection operations used by handlers
type CollectionServiceInterface interface {
	CreateCollection(ctx context.Context, userID uuid.UUID, req *models.CreateCollectionRequest) (*services.CollectionResponse, error)
	GetUserCollections(ctx context.Context, userID uuid.UUID) ([]*services.CollectionResponse, error)
	GetCollection(ctx context.Context, userID, collectionID uuid.UUID) (*services.CollectionResponse, error)
	UpdateCollection(ctx context.Context, userID, collectionID uuid.UUID, req *models.UpdateCollectionRequest) (*services.CollectionResponse, error)
	DeleteCollection(ctx context.Context, userID, collectionID uuid.UUID) error
	SetCollectionTrades(ctx context.Context, userID, collectionID uuid.UUID, req *models.SetCollectionTradesRequest) error
}

// PreferenceServiceInterface defines preference operations used by handlers
type PreferenceServiceInterface interface {
	GetPreference(ctx context.Context, userID uuid.UUID, prefType string) (*services.PreferenceResponse, error)
	SavePreference(ctx context.Context, userID uuid.UUID, req *models.SavePreferenceRequest) (*services.PreferenceResponse, error)
}

// StatsServiceInterface defines statistics operations used by handlers
type StatsServiceInterface interface {
	Summary(ctx context.Context, userID uuid.UUID, filters models.TradeFilters) (services.TradeStats, error)
	ByDimension(ctx context.Context, userID uuid.UUID, dimension string, filters models.TradeFilters) ([]services.DimensionStats, error)
	Daily(ctx context.Context, userID uuid.UUID, dateField string, filters models.TradeFilters) ([]services.DailyStats, error)
}

// AuthServiceInterface defines authentication operations used by handlers
type AuthServiceInterface interface {
	InitiateLogin(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error)
	HandleCallback(ctx context.Context, req *services.CallbackRequest, expectedState string) (*services.AuthResponse, error)
	RefreshToken(ctx context.Context, req *services.RefreshRequest) (*services.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// UserServiceInterface defines profile operations used by handlers
type UserServiceInterface interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*services.UserInfo, error)
	UpdateCurrentUser(ctx context.Context, userID uuid.UUID, req *services.UpdateUserRequest) (*services.UserInfo, error)
}
