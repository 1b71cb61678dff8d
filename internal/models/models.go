package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JSON is a custom type for handling JSON data in PostgreSQL
type JSON map[string]interface{}

// Scan implements the sql.Scanner interface for JSON
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("cannot scan non-[]byte into JSON")
	}

	if len(bytes) == 0 {
		*j = make(JSON)
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Value implements the driver.Valuer interface for JSON
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal(make(JSON))
	}
	return json.Marshal(j)
}

// Trade position constants
const (
	PositionLong  = "LONG"
	PositionShort = "SHORT"
)

// Win/loss labels stored on trades
const (
	WinLossWin       = "win"
	WinLossLoss      = "loss"
	WinLossBreakeven = "breakeven"

	// WinLossAll is a client-side sentinel meaning "no win/loss filter".
	// It is normalized away at the API boundary and never reaches a query.
	WinLossAll = "all"
)

// Trading session labels derived from the UTC hour of the trade date
const (
	SessionAsian   = "ASIAN"
	SessionLondon  = "LONDON"
	SessionNewYork = "NEWYORK"
	SessionOverlap = "OVERLAP"
)

// winLossThreshold is the breakeven band around zero: results within
// [-0.1, 0.1] R are recorded as breakeven.
var winLossThreshold = decimal.NewFromFloat(0.1)

// DetermineWinLoss derives the stored win/loss label from a realized
// R-multiple. Applied once at write time, never recomputed on read.
func DetermineWinLoss(actualExitR decimal.Decimal) string {
	switch {
	case actualExitR.GreaterThan(winLossThreshold):
		return WinLossWin
	case actualExitR.LessThan(winLossThreshold.Neg()):
		return WinLossLoss
	default:
		return WinLossBreakeven
	}
}

// DeriveTradingSession maps the UTC hour of the trade date to a session
// bucket:
//
//	[0, 8)   ASIAN
//	[8, 13)  LONDON
//	[13, 17) OVERLAP
//	[17, 22) NEWYORK
//	[22, 24) ASIAN
func DeriveTradingSession(tradeDate time.Time) string {
	hour := tradeDate.UTC().Hour()
	switch {
	case hour < 8:
		return SessionAsian
	case hour < 13:
		return SessionLondon
	case hour < 17:
		return SessionOverlap
	case hour < 22:
		return SessionNewYork
	default:
		return SessionAsian
	}
}

// User represents an authenticated journal owner
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Avatar   *string   `gorm:"type:text" json:"avatar,omitempty"`
	Settings JSON      `gorm:"type:jsonb" json:"settings"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Trades      []Trade      `json:"-"`
	Collections []Collection `json:"-"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Screenshot holds the stored metadata of one uploaded chart image.
// The upload service itself is external; only its output is recorded.
type Screenshot struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Format    string `json:"format,omitempty"`
}

// ScreenshotList is an ordered list of screenshots stored as a JSON column
type ScreenshotList []Screenshot

// Scan implements the sql.Scanner interface for ScreenshotList
func (s *ScreenshotList) Scan(value interface{}) error {
	if value == nil {
		*s = ScreenshotList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("cannot scan non-[]byte into ScreenshotList")
	}

	if len(bytes) == 0 {
		*s = ScreenshotList{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for ScreenshotList
func (s ScreenshotList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(ScreenshotList{})
	}
	return json.Marshal(s)
}

// Trade represents one logged discretionary trade
type Trade struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_trades_user_order_date" json:"user_id"`

	// TradeDate is the chart/analysis date, OrderDate the date the order was
	// placed. They are independent: neither equality nor ordering is implied.
	TradeDate time.Time `gorm:"not null;index" json:"trade_date"`
	OrderDate time.Time `gorm:"not null;index:idx_trades_user_order_date,sort:desc" json:"order_date"`

	CommodityID     *uuid.UUID `gorm:"type:uuid;index" json:"commodity_id,omitempty"`
	TimeframeID     *uuid.UUID `gorm:"type:uuid;index" json:"timeframe_id,omitempty"`
	TrendlineTypeID *uuid.UUID `gorm:"type:uuid;index" json:"trendline_type_id,omitempty"`
	TradeTypeID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"trade_type_id"`
	Position        string     `gorm:"type:varchar(10);not null;index" json:"position"`

	StopLossTicks      int             `gorm:"not null" json:"stop_loss_ticks"`
	TargetR            decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"target_r"`
	ActualExitR        decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"actual_exit_r"`
	Leverage           int             `gorm:"not null;default:1" json:"leverage"`
	ProfitLoss         decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"profit_loss"`
	HoldingTimeMinutes *int            `json:"holding_time_minutes,omitempty"`

	// Stored derivations, written by the service layer on create/update
	WinLoss        string `gorm:"type:varchar(10);not null;index" json:"win_loss"`
	TradingSession string `gorm:"type:varchar(10);not null;index" json:"trading_session"`

	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	Screenshots ScreenshotList `gorm:"type:jsonb" json:"screenshots"`
	IsFavorite  bool           `gorm:"not null;default:false;index" json:"is_favorite"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Commodity     *Commodity     `gorm:"foreignKey:CommodityID" json:"-"`
	Timeframe     *Timeframe     `gorm:"foreignKey:TimeframeID" json:"-"`
	TrendlineType *TrendlineType `gorm:"foreignKey:TrendlineTypeID" json:"-"`
	TradeType     *TradeType     `gorm:"foreignKey:TradeTypeID" json:"-"`
	EntryTypes    []EntryType    `gorm:"many2many:trade_entry_types" json:"-"`
	Tags          []TradingTag   `gorm:"many2many:trade_tags" json:"-"`
	Collections   []Collection   `gorm:"many2many:trade_collections" json:"-"`
}

// TableName returns the table name for Trade
func (Trade) TableName() string {
	return "trades"
}

// BeforeCreate assigns an ID when the caller did not set one
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Commodity is a traded instrument reference entry
type Commodity struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Commodity) TableName() string { return "commodities" }

// BeforeCreate assigns an ID when the caller did not set one
func (o *Commodity) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Timeframe is a chart timeframe reference entry
type Timeframe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Timeframe) TableName() string { return "timeframes" }

// BeforeCreate assigns an ID when the caller did not set one
func (o *Timeframe) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TradeType is a trade-setup classification reference entry
type TradeType struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TradeType) TableName() string { return "trade_types" }

// BeforeCreate assigns an ID when the caller did not set one
func (o *TradeType) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TrendlineType is a trendline classification reference entry
type TrendlineType struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TrendlineType) TableName() string { return "trendline_types" }

// BeforeCreate assigns an ID when the caller did not set one
func (o *TrendlineType) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// EntryType is an entry-signal reference entry; trades carry one or more
type EntryType struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (EntryType) TableName() string { return "entry_types" }

// BeforeCreate assigns an ID when the caller did not set one
func (o *EntryType) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TradingTag is a free-form label; unlike the other option kinds it is
// owned by a user, and its name is unique per user rather than globally
type TradingTag struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_trading_tags_user_name" json:"user_id,omitempty"`
	Name         string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_trading_tags_user_name" json:"name"`
	DisplayOrder int        `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TradingTag) TableName() string { return "trading_tags" }

// BeforeCreate assigns an ID when the caller did not set one
func (o *TradingTag) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Collection is a user-defined named grouping of trades
type Collection struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_collections_user_name" json:"user_id"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_collections_user_name" json:"name"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Trades []Trade `gorm:"many2many:trade_collections" json:"-"`
}

func (Collection) TableName() string { return "collections" }

// BeforeCreate assigns an ID when the caller did not set one
func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// UserPreference stores one opaque per-user settings blob keyed by type
// (saved column layout, saved filter set, and so on). Writes replace the
// whole blob for that key.
type UserPreference struct {
	ID       uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_preferences_user_type" json:"user_id"`
	Type     string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_preferences_user_type" json:"type"`
	Settings datatypes.JSON `gorm:"type:jsonb" json:"settings"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (UserPreference) TableName() string { return "user_preferences" }

// BeforeCreate assigns an ID when the caller did not set one
func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
