package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory SQLite database and migrates the
// full schema. A single connection keeps the concurrent count+fetch reads
// of the query engine on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Commodity{},
		&models.Timeframe{},
		&models.TradeType{},
		&models.TrendlineType{},
		&models.EntryType{},
		&models.TradingTag{},
		&models.Trade{},
		&models.Collection{},
		&models.UserPreference{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Username: "trader_" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Settings: models.JSON{},
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestOption(t *testing.T, db *gorm.DB, kind models.OptionKind, name string, userID *uuid.UUID) *models.OptionItem {
	t.Helper()

	item := &models.OptionItem{Name: name, IsActive: true}
	require.NoError(t, NewOptionRepository(db).Create(context.Background(), kind, item, userID))
	return item
}

// tradeFixtures holds the shared reference entries trades point at
type tradeFixtures struct {
	user      *models.User
	tradeType *models.OptionItem
	commodity *models.OptionItem
	entryType *models.OptionItem
}

func setupTradeFixtures(t *testing.T, db *gorm.DB) tradeFixtures {
	t.Helper()

	return tradeFixtures{
		user:      createTestUser(t, db),
		tradeType: createTestOption(t, db, models.OptionKindTradeType, "Breakout", nil),
		commodity: createTestOption(t, db, models.OptionKindCommodity, "Gold", nil),
		entryType: createTestOption(t, db, models.OptionKindEntryType, "Pin Bar", nil),
	}
}

func newTestTrade(fx tradeFixtures, orderDate time.Time, actualExitR float64) *models.Trade {
	exitR := decimal.NewFromFloat(actualExitR)
	return &models.Trade{
		ID:             uuid.New(),
		UserID:         fx.user.ID,
		TradeDate:      orderDate.Add(-24 * time.Hour),
		OrderDate:      orderDate,
		CommodityID:    &fx.commodity.ID,
		TradeTypeID:    fx.tradeType.ID,
		Position:       models.PositionLong,
		StopLossTicks:  20,
		TargetR:        decimal.NewFromFloat(3),
		ActualExitR:    exitR,
		Leverage:       10,
		ProfitLoss:     exitR.Mul(decimal.NewFromInt(100)),
		WinLoss:        models.DetermineWinLoss(exitR),
		TradingSession: models.DeriveTradingSession(orderDate.Add(-24 * time.Hour)),
		Screenshots:    models.ScreenshotList{},
	}
}

func TestSortColumns_MatchSortableFieldAllowList(t *testing.T) {
	allowed := models.SortableTradeFields()
	assert.Len(t, tradeSortColumns, len(allowed))
	for _, field := range allowed {
		_, ok := tradeSortColumns[field]
		assert.True(t, ok, "sort column missing for allow-listed field %q", field)
	}
}
