package services

import (
	"context"
	"fmt"
	"time"

	"tradebook-backend/internal/events"
	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/google/uuid"
)

// TradeService handles trade journal business logic
type TradeService struct {
	repos     *repositories.Repositories
	publisher events.Publisher
}

// NewTradeService creates a new trade service
func NewTradeService(repos *repositories.Repositories, publisher events.Publisher) *TradeService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &TradeService{repos: repos, publisher: publisher}
}

// TradeResponse represents one trade in API responses. Relations are
// resolved to {id, name} pairs; decimals leave the service as float64 here
// and nowhere else.
type TradeResponse struct {
	ID        uuid.UUID `json:"id"`
	TradeDate time.Time `json:"trade_date"`
	OrderDate time.Time `json:"order_date"`

	Commodity     *models.OptionRef `json:"commodity,omitempty"`
	Timeframe     *models.OptionRef `json:"timeframe,omitempty"`
	TrendlineType *models.OptionRef `json:"trendline_type,omitempty"`
	TradeType     models.OptionRef  `json:"trade_type"`
	Position      string            `json:"position"`

	EntryTypes []models.OptionRef `json:"entry_types"`
	Tags       []models.OptionRef `json:"tags"`

	StopLossTicks      int     `json:"stop_loss_ticks"`
	TargetR            float64 `json:"target_r"`
	ActualExitR        float64 `json:"actual_exit_r"`
	Leverage           int     `json:"leverage"`
	ProfitLoss         float64 `json:"profit_loss"`
	HoldingTimeMinutes *int    `json:"holding_time_minutes,omitempty"`

	WinLoss        string `json:"win_loss"`
	TradingSession string `json:"trading_session"`

	Notes           *string               `json:"notes,omitempty"`
	Screenshots     models.ScreenshotList `json:"screenshots"`
	IsFavorite      bool                  `json:"is_favorite"`
	CollectionCount int                   `json:"collection_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// convertToTradeResponse shapes one loaded trade for the API. This is the
// single point where stored decimals become floats.
func convertToTradeResponse(trade *models.Trade) *TradeResponse {
	resp := &TradeResponse{
		ID:                 trade.ID,
		TradeDate:          trade.TradeDate,
		OrderDate:          trade.OrderDate,
		Position:           trade.Position,
		StopLossTicks:      trade.StopLossTicks,
		TargetR:            trade.TargetR.InexactFloat64(),
		ActualExitR:        trade.ActualExitR.InexactFloat64(),
		Leverage:           trade.Leverage,
		ProfitLoss:         trade.ProfitLoss.InexactFloat64(),
		HoldingTimeMinutes: trade.HoldingTimeMinutes,
		WinLoss:            trade.WinLoss,
		TradingSession:     trade.TradingSession,
		Notes:              trade.Notes,
		Screenshots:        trade.Screenshots,
		IsFavorite:         trade.IsFavorite,
		CollectionCount:    len(trade.Collections),
		CreatedAt:          trade.CreatedAt,
		UpdatedAt:          trade.UpdatedAt,
	}
	if resp.Screenshots == nil {
		resp.Screenshots = models.ScreenshotList{}
	}

	if trade.Commodity != nil {
		resp.Commodity = &models.OptionRef{ID: trade.Commodity.ID, Name: trade.Commodity.Name}
	}
	if trade.Timeframe != nil {
		resp.Timeframe = &models.OptionRef{ID: trade.Timeframe.ID, Name: trade.Timeframe.Name}
	}
	if trade.TrendlineType != nil {
		resp.TrendlineType = &models.OptionRef{ID: trade.TrendlineType.ID, Name: trade.TrendlineType.Name}
	}
	if trade.TradeType != nil {
		resp.TradeType = models.OptionRef{ID: trade.TradeType.ID, Name: trade.TradeType.Name}
	}

	resp.EntryTypes = make([]models.OptionRef, 0, len(trade.EntryTypes))
	for _, et := range trade.EntryTypes {
		resp.EntryTypes = append(resp.EntryTypes, models.OptionRef{ID: et.ID, Name: et.Name})
	}
	resp.Tags = make([]models.OptionRef, 0, len(trade.Tags))
	for _, tag := range trade.Tags {
		resp.Tags = append(resp.Tags, models.OptionRef{ID: tag.ID, Name: tag.Name})
	}
	return resp
}

// getOwnedTrade loads one trade and enforces ownership. A trade that exists
// but belongs to someone else is reported exactly like a missing one.
func (s *TradeService) getOwnedTrade(ctx context.Context, userID, tradeID uuid.UUID) (*models.Trade, error) {
	trade, err := s.repos.Trade.GetByID(ctx, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	if trade == nil || trade.UserID != userID {
		return nil, repositories.ErrTradeNotFound
	}
	return trade, nil
}

// CreateTrade validates and stores a new trade with its derived fields
func (s *TradeService) CreateTrade(ctx context.Context, userID uuid.UUID, req *models.CreateTradeRequest) (*TradeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}

	trade := req.ToTrade(userID)
	if err := s.repos.Trade.Create(ctx, trade, req.EntryTypeIDs, req.TagIDs); err != nil {
		return nil, err
	}

	created, err := s.getOwnedTrade(ctx, userID, trade.ID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.Event{
		Subject:  events.SubjectTradeCreated,
		UserID:   userID,
		EntityID: trade.ID.String(),
	})
	return convertToTradeResponse(created), nil
}

// GetTrade retrieves one trade owned by the user
func (s *TradeService) GetTrade(ctx context.Context, userID, tradeID uuid.UUID) (*TradeResponse, error) {
	trade, err := s.getOwnedTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}
	return convertToTradeResponse(trade), nil
}

// UpdateTrade patches a trade; a present entry-type or tag set replaces the
// full association set in the same transaction as the row update
func (s *TradeService) UpdateTrade(ctx context.Context, userID, tradeID uuid.UUID, req *models.UpdateTradeRequest) (*TradeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}

	trade, err := s.getOwnedTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	req.Apply(trade)
	if err := s.repos.Trade.Update(ctx, trade, req.EntryTypeIDs, req.TagIDs); err != nil {
		return nil, err
	}

	updated, err := s.getOwnedTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.Event{
		Subject:  events.SubjectTradeUpdated,
		UserID:   userID,
		EntityID: tradeID.String(),
	})
	return convertToTradeResponse(updated), nil
}

// DeleteTrade removes a trade owned by the user along with its join rows
func (s *TradeService) DeleteTrade(ctx context.Context, userID, tradeID uuid.UUID) error {
	if _, err := s.getOwnedTrade(ctx, userID, tradeID); err != nil {
		return err
	}
	if err := s.repos.Trade.Delete(ctx, tradeID); err != nil {
		return err
	}

	s.publisher.Publish(events.Event{
		Subject:  events.SubjectTradeDeleted,
		UserID:   userID,
		EntityID: tradeID.String(),
	})
	return nil
}

// ToggleFavorite flips the favorite flag on one owned trade
func (s *TradeService) ToggleFavorite(ctx context.Context, userID, tradeID uuid.UUID) (*TradeResponse, error) {
	trade, err := s.getOwnedTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	trade.IsFavorite = !trade.IsFavorite
	if err := s.repos.Trade.Update(ctx, trade, nil, nil); err != nil {
		return nil, err
	}
	return convertToTradeResponse(trade), nil
}

// QueryTrades runs one DataTable request scoped to the user: normalized,
// sort-validated, then executed with a concurrent count
func (s *TradeService) QueryTrades(ctx context.Context, userID uuid.UUID, req models.DataTableRequest) ([]*TradeResponse, models.PaginationMeta, error) {
	req = models.NormalizeDataTableRequest(req)
	if !models.ValidateSortFields(req.Sort) {
		return nil, models.PaginationMeta{}, repositories.ErrInvalidSortField
	}

	trades, total, err := s.repos.Trade.Query(ctx, userID, req)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	responses := make([]*TradeResponse, 0, len(trades))
	for _, trade := range trades {
		responses = append(responses, convertToTradeResponse(trade))
	}

	meta := models.CalculatePaginationMeta(req.Pagination.Page, req.Pagination.PageSize, total)
	return responses, meta, nil
}

// ExportTrades fetches the full filtered set without pagination, bounded by
// the export row cap. Collections are not loaded on this path, so the
// collection count reads zero.
func (s *TradeService) ExportTrades(ctx context.Context, userID uuid.UUID, filters models.TradeFilters, sortSpec []models.SortSpec) ([]*TradeResponse, error) {
	req := models.NormalizeDataTableRequest(models.DataTableRequest{Filters: filters, Sort: sortSpec})
	if !models.ValidateSortFields(req.Sort) {
		return nil, repositories.ErrInvalidSortField
	}

	trades, err := s.repos.Trade.Export(ctx, userID, req.Filters, req.Sort)
	if err != nil {
		return nil, err
	}

	responses := make([]*TradeResponse, 0, len(trades))
	for _, trade := range trades {
		responses = append(responses, convertToTradeResponse(trade))
	}
	return responses, nil
}
