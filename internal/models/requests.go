package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTradeRequest represents a request to log a new trade
type CreateTradeRequest struct {
	TradeDate time.Time `json:"trade_date" binding:"required"`
	OrderDate time.Time `json:"order_date" binding:"required"`

	CommodityID     *uuid.UUID `json:"commodity_id,omitempty"`
	TimeframeID     *uuid.UUID `json:"timeframe_id,omitempty"`
	TrendlineTypeID *uuid.UUID `json:"trendline_type_id,omitempty"`
	TradeTypeID     uuid.UUID  `json:"trade_type_id" binding:"required"`
	Position        string     `json:"position" binding:"required"`

	EntryTypeIDs []uuid.UUID `json:"entry_type_ids" binding:"required"`
	TagIDs       []uuid.UUID `json:"tag_ids,omitempty"`

	StopLossTicks      int     `json:"stop_loss_ticks"`
	TargetR            float64 `json:"target_r"`
	ActualExitR        float64 `json:"actual_exit_r"`
	Leverage           int     `json:"leverage"`
	ProfitLoss         float64 `json:"profit_loss"`
	HoldingTimeMinutes *int    `json:"holding_time_minutes,omitempty"`

	Notes       *string        `json:"notes,omitempty"`
	Screenshots ScreenshotList `json:"screenshots,omitempty"`
	IsFavorite  bool           `json:"is_favorite"`
}

// Validate validates the create trade request
func (r *CreateTradeRequest) Validate() error {
	if r.TradeDate.IsZero() {
		return errors.New("trade date is required")
	}
	if r.OrderDate.IsZero() {
		return errors.New("order date is required")
	}
	if r.TradeTypeID == uuid.Nil {
		return errors.New("trade type is required")
	}
	if r.Position != PositionLong && r.Position != PositionShort {
		return errors.New("position must be LONG or SHORT")
	}
	if len(r.EntryTypeIDs) == 0 {
		return errors.New("at least one entry type is required")
	}
	for _, id := range r.EntryTypeIDs {
		if id == uuid.Nil {
			return errors.New("entry type id cannot be nil")
		}
	}
	if r.StopLossTicks <= 0 {
		return errors.New("stop loss ticks must be positive")
	}
	if r.TargetR <= 0 {
		return errors.New("target R must be positive")
	}
	if r.ActualExitR < -1 {
		return errors.New("actual exit R cannot be below -1")
	}
	if r.Leverage <= 0 {
		return errors.New("leverage must be positive")
	}
	if r.HoldingTimeMinutes != nil && *r.HoldingTimeMinutes < 0 {
		return errors.New("holding time cannot be negative")
	}
	return nil
}

// ToTrade converts the request to a Trade model, deriving the stored
// win/loss label and trading session at write time
func (r *CreateTradeRequest) ToTrade(userID uuid.UUID) *Trade {
	actualExitR := decimal.NewFromFloat(r.ActualExitR)

	return &Trade{
		ID:                 uuid.New(),
		UserID:             userID,
		TradeDate:          r.TradeDate,
		OrderDate:          r.OrderDate,
		CommodityID:        r.CommodityID,
		TimeframeID:        r.TimeframeID,
		TrendlineTypeID:    r.TrendlineTypeID,
		TradeTypeID:        r.TradeTypeID,
		Position:           r.Position,
		StopLossTicks:      r.StopLossTicks,
		TargetR:            decimal.NewFromFloat(r.TargetR),
		ActualExitR:        actualExitR,
		Leverage:           r.Leverage,
		ProfitLoss:         decimal.NewFromFloat(r.ProfitLoss),
		HoldingTimeMinutes: r.HoldingTimeMinutes,
		WinLoss:            DetermineWinLoss(actualExitR),
		TradingSession:     DeriveTradingSession(r.TradeDate),
		Notes:              r.Notes,
		Screenshots:        r.Screenshots,
		IsFavorite:         r.IsFavorite,
	}
}

// UpdateTradeRequest represents a request to edit a trade. Scalar fields
// patch individually; the entry-type and tag sets, when present, replace
// the full association set (no partial patch of the joins).
type UpdateTradeRequest struct {
	TradeDate *time.Time `json:"trade_date,omitempty"`
	OrderDate *time.Time `json:"order_date,omitempty"`

	CommodityID     *uuid.UUID `json:"commodity_id,omitempty"`
	TimeframeID     *uuid.UUID `json:"timeframe_id,omitempty"`
	TrendlineTypeID *uuid.UUID `json:"trendline_type_id,omitempty"`
	TradeTypeID     *uuid.UUID `json:"trade_type_id,omitempty"`
	Position        *string    `json:"position,omitempty"`

	EntryTypeIDs []uuid.UUID `json:"entry_type_ids,omitempty"`
	TagIDs       []uuid.UUID `json:"tag_ids,omitempty"`

	StopLossTicks      *int     `json:"stop_loss_ticks,omitempty"`
	TargetR            *float64 `json:"target_r,omitempty"`
	ActualExitR        *float64 `json:"actual_exit_r,omitempty"`
	Leverage           *int     `json:"leverage,omitempty"`
	ProfitLoss         *float64 `json:"profit_loss,omitempty"`
	HoldingTimeMinutes *int     `json:"holding_time_minutes,omitempty"`

	Notes       *string        `json:"notes,omitempty"`
	Screenshots ScreenshotList `json:"screenshots,omitempty"`
	IsFavorite  *bool          `json:"is_favorite,omitempty"`
}

// Validate validates the update trade request
func (r *UpdateTradeRequest) Validate() error {
	if r.Position != nil && *r.Position != PositionLong && *r.Position != PositionShort {
		return errors.New("position must be LONG or SHORT")
	}
	if r.TradeTypeID != nil && *r.TradeTypeID == uuid.Nil {
		return errors.New("trade type id cannot be nil")
	}
	if r.EntryTypeIDs != nil && len(r.EntryTypeIDs) == 0 {
		return errors.New("at least one entry type is required")
	}
	if r.StopLossTicks != nil && *r.StopLossTicks <= 0 {
		return errors.New("stop loss ticks must be positive")
	}
	if r.TargetR != nil && *r.TargetR <= 0 {
		return errors.New("target R must be positive")
	}
	if r.ActualExitR != nil && *r.ActualExitR < -1 {
		return errors.New("actual exit R cannot be below -1")
	}
	if r.Leverage != nil && *r.Leverage <= 0 {
		return errors.New("leverage must be positive")
	}
	if r.HoldingTimeMinutes != nil && *r.HoldingTimeMinutes < 0 {
		return errors.New("holding time cannot be negative")
	}
	return nil
}

// Apply patches the trade in place and refreshes the stored derivations
// when their inputs changed
func (r *UpdateTradeRequest) Apply(trade *Trade) {
	if r.TradeDate != nil {
		trade.TradeDate = *r.TradeDate
		trade.TradingSession = DeriveTradingSession(trade.TradeDate)
	}
	if r.OrderDate != nil {
		trade.OrderDate = *r.OrderDate
	}
	if r.CommodityID != nil {
		trade.CommodityID = r.CommodityID
	}
	if r.TimeframeID != nil {
		trade.TimeframeID = r.TimeframeID
	}
	if r.TrendlineTypeID != nil {
		trade.TrendlineTypeID = r.TrendlineTypeID
	}
	if r.TradeTypeID != nil {
		trade.TradeTypeID = *r.TradeTypeID
	}
	if r.Position != nil {
		trade.Position = *r.Position
	}
	if r.StopLossTicks != nil {
		trade.StopLossTicks = *r.StopLossTicks
	}
	if r.TargetR != nil {
		trade.TargetR = decimal.NewFromFloat(*r.TargetR)
	}
	if r.ActualExitR != nil {
		trade.ActualExitR = decimal.NewFromFloat(*r.ActualExitR)
		trade.WinLoss = DetermineWinLoss(trade.ActualExitR)
	}
	if r.Leverage != nil {
		trade.Leverage = *r.Leverage
	}
	if r.ProfitLoss != nil {
		trade.ProfitLoss = decimal.NewFromFloat(*r.ProfitLoss)
	}
	if r.HoldingTimeMinutes != nil {
		trade.HoldingTimeMinutes = r.HoldingTimeMinutes
	}
	if r.Notes != nil {
		trade.Notes = r.Notes
	}
	if r.Screenshots != nil {
		trade.Screenshots = r.Screenshots
	}
	if r.IsFavorite != nil {
		trade.IsFavorite = *r.IsFavorite
	}
}

// CreateOptionRequest represents a request to add a reference-data entry
type CreateOptionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Validate validates the create option request
func (r *CreateOptionRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateOptionRequest represents a partial patch of a reference-data entry
type UpdateOptionRequest struct {
	Name         *string `json:"name,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// Validate validates the update option request
func (r *UpdateOptionRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

// ToUpdateMap converts the request to a map for database updates
func (r *UpdateOptionRequest) ToUpdateMap() map[string]interface{} {
	updates := make(map[string]interface{})

	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	if r.DisplayOrder != nil {
		updates["display_order"] = *r.DisplayOrder
	}

	return updates
}

// ReorderOptionsRequest applies a batch of display-order changes as one
// all-or-nothing transaction
type ReorderOptionsRequest struct {
	Items []ReorderItem `json:"items" binding:"required"`
}

// Validate validates the reorder request
func (r *ReorderOptionsRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("items are required")
	}
	for _, item := range r.Items {
		if item.ID == uuid.Nil {
			return errors.New("item id cannot be nil")
		}
	}
	return nil
}

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// Validate validates the create collection request
func (r *CreateCollectionRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateCollectionRequest represents a partial patch of a collection
type UpdateCollectionRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// Validate validates the update collection request
func (r *UpdateCollectionRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

// SetCollectionTradesRequest replaces the full trade membership of a
// collection
type SetCollectionTradesRequest struct {
	TradeIDs []uuid.UUID `json:"trade_ids"`
}

// SavePreferenceRequest upserts one settings blob keyed by type
type SavePreferenceRequest struct {
	Type     string `json:"type" binding:"required,min=1,max=100"`
	Settings JSON   `json:"settings" binding:"required"`
}

// Validate validates the save preference request
func (r *SavePreferenceRequest) Validate() error {
	if r.Type == "" {
		return errors.New("type is required")
	}
	if r.Settings == nil {
		return errors.New("settings are required")
	}
	return nil
}
