package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new trade repository instance
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

// tradeSortColumns maps the client-facing sort keys to SQL order
// expressions. Categorical keys sort by the referenced option's name via a
// correlated subquery so no join rows are duplicated. Keys must stay in
// lockstep with the models sort-field allow-list.
var tradeSortColumns = map[string]string{
	"id":                 "trades.id",
	"tradeDate":          "trades.trade_date",
	"orderDate":          "trades.order_date",
	"commodity":          "(SELECT name FROM commodities WHERE commodities.id = trades.commodity_id)",
	"timeframe":          "(SELECT name FROM timeframes WHERE timeframes.id = trades.timeframe_id)",
	"tradeType":          "(SELECT name FROM trade_types WHERE trade_types.id = trades.trade_type_id)",
	"trendlineType":      "(SELECT name FROM trendline_types WHERE trendline_types.id = trades.trendline_type_id)",
	"position":           "trades.position",
	"stopLossTicks":      "trades.stop_loss_ticks",
	"targetR":            "trades.target_r",
	"actualExitR":        "trades.actual_exit_r",
	"leverage":           "trades.leverage",
	"profitLoss":         "trades.profit_loss",
	"holdingTimeMinutes": "trades.holding_time_minutes",
	"winLoss":            "trades.win_loss",
	"tradingSession":     "trades.trading_session",
	"isFavorite":         "trades.is_favorite",
	"createdAt":          "trades.created_at",
	"updatedAt":          "trades.updated_at",
}

// parseFilterDate accepts a plain ISO date or a full RFC 3339 timestamp.
// The second return reports the date-only case, where an upper bound must
// cover the whole day.
func parseFilterDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), true, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: malformed date %q", ErrInvalidFilterValue, value)
}

// applyDateRange adds inclusive bounds on one timestamp column. Either
// side may be absent.
func applyDateRange(query *gorm.DB, column string, from, to *string) (*gorm.DB, error) {
	if from != nil {
		t, _, err := parseFilterDate(*from)
		if err != nil {
			return nil, err
		}
		query = query.Where(column+" >= ?", t)
	}
	if to != nil {
		t, dateOnly, err := parseFilterDate(*to)
		if err != nil {
			return nil, err
		}
		if dateOnly {
			query = query.Where(column+" < ?", t.AddDate(0, 0, 1))
		} else {
			query = query.Where(column+" <= ?", t)
		}
	}
	return query, nil
}

// applyTradeFilters translates the structured filter object into query
// predicates. The owner term comes first and is unconditional: nothing in
// the filters object can widen the result beyond the owner's rows.
func applyTradeFilters(query *gorm.DB, ownerID uuid.UUID, f models.TradeFilters) (*gorm.DB, error) {
	query = query.Where("trades.user_id = ?", ownerID)

	var err error
	if query, err = applyDateRange(query, "trades.trade_date", f.DateFrom, f.DateTo); err != nil {
		return nil, err
	}
	if query, err = applyDateRange(query, "trades.order_date", f.OrderDateFrom, f.OrderDateTo); err != nil {
		return nil, err
	}

	if len(f.TradeTypeIDs) > 0 {
		query = query.Where("trades.trade_type_id IN ?", f.TradeTypeIDs)
	}
	if len(f.CommodityIDs) > 0 {
		query = query.Where("trades.commodity_id IN ?", f.CommodityIDs)
	}
	if len(f.TimeframeIDs) > 0 {
		query = query.Where("trades.timeframe_id IN ?", f.TimeframeIDs)
	}
	if len(f.TrendlineTypeIDs) > 0 {
		query = query.Where("trades.trendline_type_id IN ?", f.TrendlineTypeIDs)
	}

	// Multi-valued relations filter on join existence, not equality
	if len(f.EntryTypeIDs) > 0 {
		query = query.Where("trades.id IN (SELECT trade_id FROM trade_entry_types WHERE entry_type_id IN ?)", f.EntryTypeIDs)
	}
	if len(f.TagIDs) > 0 {
		query = query.Where("trades.id IN (SELECT trade_id FROM trade_tags WHERE trading_tag_id IN ?)", f.TagIDs)
	}
	if f.CollectionID != nil {
		query = query.Where("trades.id IN (SELECT trade_id FROM trade_collections WHERE collection_id = ?)", *f.CollectionID)
	}

	if len(f.Positions) > 0 {
		query = query.Where("trades.position IN ?", f.Positions)
	}
	if f.WinLoss != nil {
		query = query.Where("trades.win_loss = ?", *f.WinLoss)
	}
	if f.TradingSession != nil {
		query = query.Where("trades.trading_session = ?", *f.TradingSession)
	}

	if f.HoldingTimeMin != nil {
		query = query.Where("trades.holding_time_minutes >= ?", *f.HoldingTimeMin)
	}
	if f.HoldingTimeMax != nil {
		query = query.Where("trades.holding_time_minutes <= ?", *f.HoldingTimeMax)
	}
	if f.ActualExitRMin != nil {
		query = query.Where("trades.actual_exit_r >= ?", *f.ActualExitRMin)
	}
	if f.ActualExitRMax != nil {
		query = query.Where("trades.actual_exit_r <= ?", *f.ActualExitRMax)
	}

	if f.Keyword != nil && *f.Keyword != "" {
		pattern := "%" + strings.ToLower(*f.Keyword) + "%"
		query = query.Where("LOWER(trades.notes) LIKE ?", pattern)
	}
	if f.IsFavorite != nil {
		query = query.Where("trades.is_favorite = ?", *f.IsFavorite)
	}

	return query, nil
}

// applyTradeSort appends the caller's sort keys in sequence, then the
// primary key as a final tie-breaker so identical rows keep a stable order
// across pages.
func applyTradeSort(query *gorm.DB, sort []models.SortSpec) (*gorm.DB, error) {
	for _, s := range sort {
		column, ok := tradeSortColumns[s.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, s.Field)
		}
		direction := "ASC"
		if s.Direction == models.SortDesc {
			direction = "DESC"
		}
		query = query.Order(column + " " + direction)
	}
	return query.Order("trades.id ASC"), nil
}

// withTradeRelations preloads the single-valued and multi-valued relations
// needed for row shaping
func withTradeRelations(query *gorm.DB, includeCollections bool) *gorm.DB {
	query = query.
		Preload("Commodity").
		Preload("Timeframe").
		Preload("TrendlineType").
		Preload("TradeType").
		Preload("EntryTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_types.display_order ASC")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("trading_tags.display_order ASC")
		})
	if includeCollections {
		query = query.Preload("Collections")
	}
	return query
}

func (r *tradeRepository) Create(ctx context.Context, trade *models.Trade, entryTypeIDs, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(trade).Error; err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf("%w: unknown option reference", ErrInvalidTrade)
			}
			return fmt.Errorf("failed to create trade: %w", err)
		}
		if err := insertJoinRows(tx, "trade_entry_types", "entry_type_id", trade.ID, entryTypeIDs); err != nil {
			return err
		}
		return insertJoinRows(tx, "trade_tags", "trading_tag_id", trade.ID, tagIDs)
	})
}

func (r *tradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	var trade models.Trade
	err := withTradeRelations(r.db.WithContext(ctx), true).
		Where("trades.id = ?", id).
		First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return &trade, nil
}

// Update writes the trade row and, when a replacement set is supplied,
// swaps the join rows inside the same transaction. The delete and
// re-create of a join set are never observable separately.
func (r *tradeRepository) Update(ctx context.Context, trade *models.Trade, entryTypeIDs, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(trade).Error; err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf("%w: unknown option reference", ErrInvalidTrade)
			}
			return fmt.Errorf("failed to update trade: %w", err)
		}
		if entryTypeIDs != nil {
			if err := replaceJoinRows(tx, "trade_entry_types", "entry_type_id", trade.ID, entryTypeIDs); err != nil {
				return err
			}
		}
		if tagIDs != nil {
			if err := replaceJoinRows(tx, "trade_tags", "trading_tag_id", trade.ID, tagIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *tradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"trade_entry_types", "trade_tags", "trade_collections"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE trade_id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete trade joins: %w", err)
			}
		}
		return tx.Delete(&models.Trade{}, "id = ?", id).Error
	})
}

func (r *tradeRepository) Query(ctx context.Context, ownerID uuid.UUID, req models.DataTableRequest) ([]*models.Trade, int64, error) {
	var trades []*models.Trade
	var total int64

	// Page fetch and count are independent reads over an identical filter
	// clause; run them concurrently.
	fetchDone := make(chan error, 1)
	countDone := make(chan error, 1)

	go func() {
		query, err := applyTradeFilters(r.db.WithContext(ctx).Model(&models.Trade{}), ownerID, req.Filters)
		if err != nil {
			fetchDone <- err
			return
		}
		query, err = applyTradeSort(query, req.Sort)
		if err != nil {
			fetchDone <- err
			return
		}
		offset := (req.Pagination.Page - 1) * req.Pagination.PageSize
		fetchDone <- withTradeRelations(query, true).
			Offset(offset).
			Limit(req.Pagination.PageSize).
			Find(&trades).Error
	}()

	go func() {
		query, err := applyTradeFilters(r.db.WithContext(ctx).Model(&models.Trade{}), ownerID, req.Filters)
		if err != nil {
			countDone <- err
			return
		}
		countDone <- query.Count(&total).Error
	}()

	fetchErr := <-fetchDone
	countErr := <-countDone
	if fetchErr != nil {
		return nil, 0, fetchErr
	}
	if countErr != nil {
		return nil, 0, countErr
	}

	return trades, total, nil
}

func (r *tradeRepository) Export(ctx context.Context, ownerID uuid.UUID, filters models.TradeFilters, sort []models.SortSpec) ([]*models.Trade, error) {
	query, err := applyTradeFilters(r.db.WithContext(ctx).Model(&models.Trade{}), ownerID, filters)
	if err != nil {
		return nil, err
	}
	query, err = applyTradeSort(query, sort)
	if err != nil {
		return nil, err
	}

	var trades []*models.Trade
	err = withTradeRelations(query, false).
		Limit(models.ExportRowCap).
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to export trades: %w", err)
	}
	return trades, nil
}

func (r *tradeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Trade{}).Count(&total).Error
	return total, err
}

func insertJoinRows(tx *gorm.DB, table, column string, tradeID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		err := tx.Exec("INSERT INTO "+table+" (trade_id, "+column+") VALUES (?, ?)", tradeID, id).Error
		if err != nil {
			if isForeignKeyError(err) {
				return fmt.Errorf("%w: unknown option reference", ErrInvalidTrade)
			}
			return fmt.Errorf("failed to insert %s row: %w", table, err)
		}
	}
	return nil
}

func replaceJoinRows(tx *gorm.DB, table, column string, tradeID uuid.UUID, ids []uuid.UUID) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE trade_id = ?", tradeID).Error; err != nil {
		return fmt.Errorf("failed to clear %s rows: %w", table, err)
	}
	return insertJoinRows(tx, table, column, tradeID, ids)
}
